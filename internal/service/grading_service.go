package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/embedding"
	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/vector"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
)

// Grader turns a solution/answer vector pair into a score. The scoring rubric
// is a replaceable policy, not part of the service.
type Grader interface {
	Grade(solution, answer []float32) (score float64, feedback string)
}

// SimilarityGrader scores by cosine similarity scaled to the max score.
type SimilarityGrader struct {
	MaxScore float64
	MinScore float64
}

// Grade implements Grader.
func (g SimilarityGrader) Grade(solution, answer []float32) (float64, string) {
	similarity := cosineSimilarity(solution, answer)
	score := float64(similarity) * g.MaxScore
	if score < g.MinScore {
		score = g.MinScore
	}
	if score > g.MaxScore {
		score = g.MaxScore
	}
	feedback := fmt.Sprintf("auto-graded: %.1f%% similarity to the answer key", similarity*100)
	return score, feedback
}

type gradingAnswerKeyRepository interface {
	FindByID(ctx context.Context, id string) (*models.AnswerKey, error)
}

type gradingSubmissionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Submission, error)
}

type gradingAssessmentRepository interface {
	UpsertForSubmission(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error)
}

type embeddingObserver interface {
	ObserveEmbeddingCall(success bool)
}

// ComparisonResult is the ranked neighbor list for one submission or query.
type ComparisonResult struct {
	AnswerKeyID  string         `json:"answer_key_id"`
	SubmissionID string         `json:"submission_id,omitempty"`
	Matches      []vector.Match `json:"matches"`
}

// GradingService drives the embedding-based auto-grading flow. It contributes
// no scoring logic itself beyond invoking the pluggable Grader.
type GradingService struct {
	answerKeys  gradingAnswerKeyRepository
	submissions gradingSubmissionRepository
	assessments gradingAssessmentRepository
	embedder    embedding.Embedder
	store       vector.Store
	grader      Grader
	metrics     embeddingObserver
	logger      *zap.Logger
	searchLimit uint64
}

// NewGradingService wires the grading flow.
func NewGradingService(
	answerKeys gradingAnswerKeyRepository,
	submissions gradingSubmissionRepository,
	assessments gradingAssessmentRepository,
	embedder embedding.Embedder,
	store vector.Store,
	grader Grader,
	metrics embeddingObserver,
	logger *zap.Logger,
	cfg config.GradingConfig,
) *GradingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if grader == nil {
		grader = SimilarityGrader{MaxScore: cfg.MaxScore, MinScore: cfg.MinimumScore}
	}
	limit := cfg.SearchLimit
	if limit <= 0 {
		limit = 5
	}
	return &GradingService{
		answerKeys:  answerKeys,
		submissions: submissions,
		assessments: assessments,
		embedder:    embedder,
		store:       store,
		grader:      grader,
		metrics:     metrics,
		logger:      logger,
		searchLimit: uint64(limit),
	}
}

// AutoGrade embeds the answer key and the submission, scores them, stores the
// resulting assessment and indexes the submission vector for later searches.
func (s *GradingService) AutoGrade(ctx context.Context, answerKeyID, submissionID string) (*models.Assessment, error) {
	key, err := s.answerKeys.FindByID(ctx, answerKeyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "answer key not found")
		}
		return nil, mapStoreError(err, "failed to load answer key")
	}

	submission, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, mapStoreError(err, "failed to load submission")
	}
	if submission.AnswerKeyID != answerKeyID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "submission does not belong to this answer key")
	}

	vectors, err := s.embed(ctx, []string{key.Content, submission.Content})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}

	score, feedback := s.grader.Grade(vectors[0], vectors[1])

	assessment, err := s.assessments.UpsertForSubmission(ctx, &models.Assessment{
		SubmissionID: submission.ID,
		Score:        score,
		Feedback:     feedback,
	})
	if err != nil {
		return nil, mapStoreError(err, "failed to store assessment")
	}

	if err := s.store.EnsureCollection(ctx); err != nil {
		s.logger.Warn("vector collection unavailable, submission not indexed", zap.Error(err))
		return assessment, nil
	}
	if err := s.store.IndexSubmission(ctx, answerKeyID, submission.ID, submission.Content, vectors[1]); err != nil {
		s.logger.Warn("failed to index submission vector", zap.Error(err))
	}

	s.logger.Info("submission auto-graded",
		zap.String("submission_id", submission.ID),
		zap.String("answer_key_id", answerKeyID),
		zap.Float64("score", score),
	)
	return assessment, nil
}

// Compare embeds a submission and returns its nearest indexed neighbors
// scoped to the same answer key.
func (s *GradingService) Compare(ctx context.Context, answerKeyID, submissionID string, limit uint64) (*ComparisonResult, error) {
	submission, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "submission not found")
		}
		return nil, mapStoreError(err, "failed to load submission")
	}

	return s.search(ctx, answerKeyID, submission.Content, submissionID, limit)
}

// SearchSimilar embeds free-form query text and returns ranked matches among
// the indexed submissions of an answer key.
func (s *GradingService) SearchSimilar(ctx context.Context, answerKeyID, queryText string, limit uint64) (*ComparisonResult, error) {
	return s.search(ctx, answerKeyID, queryText, "", limit)
}

// CheckVectorStore reports vector service diagnostics.
func (s *GradingService) CheckVectorStore(ctx context.Context) (*vector.Diagnostics, error) {
	diag, err := s.store.Check(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}
	return diag, nil
}

func (s *GradingService) search(ctx context.Context, answerKeyID, text, submissionID string, limit uint64) (*ComparisonResult, error) {
	if limit == 0 {
		limit = s.searchLimit
	}

	vectors, err := s.embed(ctx, []string{text})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}

	matches, err := s.store.Search(ctx, answerKeyID, vectors[0], limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, err.Error())
	}

	return &ComparisonResult{
		AnswerKeyID:  answerKeyID,
		SubmissionID: submissionID,
		Matches:      matches,
	}, nil
}

// embed calls the embedding service and records the call outcome.
func (s *GradingService) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors, err := s.embedder.CreateEmbeddings(ctx, texts)
	if s.metrics != nil {
		s.metrics.ObserveEmbeddingCall(err == nil)
	}
	return vectors, err
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// clamped to [0, 1]. Mismatched or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	similarity := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if similarity < 0 {
		return 0
	}
	if similarity > 1 {
		return 1
	}
	return similarity
}
