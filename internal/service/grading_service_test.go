package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/vector"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
)

type mockGradingAnswerKeys struct {
	key *models.AnswerKey
	err error
}

func (m *mockGradingAnswerKeys) FindByID(ctx context.Context, id string) (*models.AnswerKey, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.key, nil
}

type mockGradingSubmissions struct {
	submission *models.Submission
	err        error
}

func (m *mockGradingSubmissions) FindByID(ctx context.Context, id string) (*models.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.submission, nil
}

type mockGradingAssessments struct {
	stored *models.Assessment
	err    error
}

func (m *mockGradingAssessments) UpsertForSubmission(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.stored = assessment
	stored := *assessment
	stored.ID = "a1"
	return &stored, nil
}

type mockEmbedder struct {
	vectors [][]float32
	err     error
	texts   []string
}

func (m *mockEmbedder) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.texts = texts
	if len(m.vectors) > 0 {
		return m.vectors[:len(texts)], nil
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type mockVectorStore struct {
	ensureErr  error
	indexErr   error
	searchErr  error
	matches    []vector.Match
	indexed    []string
	searchedID string
}

func (m *mockVectorStore) EnsureCollection(ctx context.Context) error { return m.ensureErr }

func (m *mockVectorStore) IndexSubmission(ctx context.Context, answerKeyID, submissionID, content string, vec []float32) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.indexed = append(m.indexed, submissionID)
	return nil
}

func (m *mockVectorStore) Search(ctx context.Context, answerKeyID string, vec []float32, limit uint64) ([]vector.Match, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	m.searchedID = answerKeyID
	return m.matches, nil
}

func (m *mockVectorStore) Check(ctx context.Context) (*vector.Diagnostics, error) {
	return &vector.Diagnostics{Connected: true, CollectionExists: true}, nil
}

func (m *mockVectorStore) Close() error { return nil }

type mockEmbeddingObserver struct {
	success int
	failure int
}

func (m *mockEmbeddingObserver) ObserveEmbeddingCall(ok bool) {
	if ok {
		m.success++
	} else {
		m.failure++
	}
}

func newGradingService(keys *mockGradingAnswerKeys, subs *mockGradingSubmissions, assessments *mockGradingAssessments, embedder *mockEmbedder, store *mockVectorStore) *GradingService {
	return NewGradingService(keys, subs, assessments, embedder, store, nil, nil, zap.NewNop(), config.GradingConfig{
		MaxScore:    100,
		SearchLimit: 5,
	})
}

func newObservedGradingService(keys *mockGradingAnswerKeys, subs *mockGradingSubmissions, embedder *mockEmbedder, store *mockVectorStore, observer *mockEmbeddingObserver) *GradingService {
	return NewGradingService(keys, subs, &mockGradingAssessments{}, embedder, store, nil, observer, zap.NewNop(), config.GradingConfig{
		MaxScore:    100,
		SearchLimit: 5,
	})
}

func TestGradingServiceAutoGrade(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1", Content: "model answer"}}
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "ak1", Content: "student answer"}}
	assessments := &mockGradingAssessments{}
	embedder := &mockEmbedder{vectors: [][]float32{{1, 0}, {1, 0}}}
	store := &mockVectorStore{}
	svc := newGradingService(keys, subs, assessments, embedder, store)

	assessment, err := svc.AutoGrade(context.Background(), "ak1", "sub1")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, assessment.Score, 0.001)
	assert.Equal(t, []string{"model answer", "student answer"}, embedder.texts)
	assert.Equal(t, []string{"sub1"}, store.indexed)
}

func TestGradingServiceAutoGradeWrongAnswerKey(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1", Content: "model answer"}}
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "other", Content: "student answer"}}
	svc := newGradingService(keys, subs, &mockGradingAssessments{}, &mockEmbedder{}, &mockVectorStore{})

	_, err := svc.AutoGrade(context.Background(), "ak1", "sub1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGradingServiceAutoGradeMissingSubmission(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1"}}
	subs := &mockGradingSubmissions{err: sql.ErrNoRows}
	svc := newGradingService(keys, subs, &mockGradingAssessments{}, &mockEmbedder{}, &mockVectorStore{})

	_, err := svc.AutoGrade(context.Background(), "ak1", "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestGradingServiceAutoGradeSurvivesIndexFailure(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1", Content: "model answer"}}
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "ak1", Content: "student answer"}}
	store := &mockVectorStore{ensureErr: errors.New("qdrant down")}
	svc := newGradingService(keys, subs, &mockGradingAssessments{}, &mockEmbedder{}, store)

	assessment, err := svc.AutoGrade(context.Background(), "ak1", "sub1")
	require.NoError(t, err)
	assert.NotNil(t, assessment)
	assert.Empty(t, store.indexed)
}

func TestGradingServiceSearchSimilarUsesDefaultLimit(t *testing.T) {
	store := &mockVectorStore{matches: []vector.Match{{SubmissionID: "sub2", Score: 0.9}}}
	svc := newGradingService(&mockGradingAnswerKeys{}, &mockGradingSubmissions{}, &mockGradingAssessments{}, &mockEmbedder{}, store)

	result, err := svc.SearchSimilar(context.Background(), "ak1", "query text", 0)
	require.NoError(t, err)
	assert.Equal(t, "ak1", store.searchedID)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "sub2", result.Matches[0].SubmissionID)
}

func TestGradingServiceCompareScopesToAnswerKey(t *testing.T) {
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "ak1", Content: "student answer"}}
	store := &mockVectorStore{matches: []vector.Match{{SubmissionID: "sub2", Score: 0.8}}}
	svc := newGradingService(&mockGradingAnswerKeys{}, subs, &mockGradingAssessments{}, &mockEmbedder{}, store)

	result, err := svc.Compare(context.Background(), "ak1", "sub1", 3)
	require.NoError(t, err)
	assert.Equal(t, "sub1", result.SubmissionID)
	assert.Equal(t, "ak1", result.AnswerKeyID)
}

func TestGradingServiceCountsEmbeddingCalls(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1", Content: "model answer"}}
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "ak1", Content: "student answer"}}
	observer := &mockEmbeddingObserver{}
	svc := newObservedGradingService(keys, subs, &mockEmbedder{}, &mockVectorStore{}, observer)

	_, err := svc.AutoGrade(context.Background(), "ak1", "sub1")
	require.NoError(t, err)
	assert.Equal(t, 1, observer.success)

	_, err = svc.SearchSimilar(context.Background(), "ak1", "query text", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, observer.success)

	_, err = svc.Compare(context.Background(), "ak1", "sub1", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, observer.success)
	assert.Zero(t, observer.failure)
}

func TestGradingServiceCountsEmbeddingFailures(t *testing.T) {
	keys := &mockGradingAnswerKeys{key: &models.AnswerKey{ID: "ak1", Content: "model answer"}}
	subs := &mockGradingSubmissions{submission: &models.Submission{ID: "sub1", AnswerKeyID: "ak1", Content: "student answer"}}
	observer := &mockEmbeddingObserver{}
	embedder := &mockEmbedder{err: errors.New("embedding service down")}
	svc := newObservedGradingService(keys, subs, embedder, &mockVectorStore{}, observer)

	_, err := svc.AutoGrade(context.Background(), "ak1", "sub1")
	require.Error(t, err)
	assert.Zero(t, observer.success)
	assert.Equal(t, 1, observer.failure)
}

func TestSimilarityGraderScaling(t *testing.T) {
	grader := SimilarityGrader{MaxScore: 100}

	score, feedback := grader.Grade([]float32{1, 0}, []float32{1, 0})
	assert.InDelta(t, 100.0, score, 0.001)
	assert.NotEmpty(t, feedback)

	score, _ = grader.Grade([]float32{1, 0}, []float32{0, 1})
	assert.InDelta(t, 0.0, score, 0.001)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	// Opposed vectors clamp to zero rather than going negative.
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, cosineSimilarity(nil, []float32{1}))
	assert.Zero(t, cosineSimilarity([]float32{1, 2}, []float32{1}))

	halfway := cosineSimilarity([]float32{1, 0}, []float32{1, 1})
	assert.InDelta(t, 1/math.Sqrt2, halfway, 1e-6)
}
