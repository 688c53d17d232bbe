// Package vector wraps the Qdrant vector search service used for
// submission-similarity queries.
package vector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
)

// Match is one ranked search result.
type Match struct {
	SubmissionID string  `json:"submission_id"`
	AnswerKeyID  string  `json:"answer_key_id"`
	Content      string  `json:"content"`
	Score        float32 `json:"score"`
}

// Diagnostics reports connection and collection state.
type Diagnostics struct {
	Connected        bool     `json:"connected"`
	Collections      []string `json:"collections"`
	CollectionExists bool     `json:"collection_exists"`
}

// Store indexes submission vectors and runs filtered similarity search.
type Store interface {
	EnsureCollection(ctx context.Context) error
	IndexSubmission(ctx context.Context, answerKeyID, submissionID, content string, vec []float32) error
	Search(ctx context.Context, answerKeyID string, vec []float32, limit uint64) ([]Match, error)
	Check(ctx context.Context) (*Diagnostics, error)
	Close() error
}

// QdrantStore is the gRPC-backed Store implementation.
type QdrantStore struct {
	client     *qdrant.Client
	collection string
	vectorSize uint64
}

// NewQdrantStore connects to Qdrant and verifies the connection.
func NewQdrantStore(cfg config.VectorConfig) (*QdrantStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: connect: %w", err)
	}

	store := &QdrantStore{
		client:     client,
		collection: cfg.Collection,
		vectorSize: cfg.VectorSize,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("qdrant: health check: %w", err)
	}

	return store, nil
}

// EnsureCollection creates the submissions collection when absent.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	exists, err := s.client.CollectionExists(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("qdrant: check collection %s: %w", s.collection, err)
	}
	if exists {
		return nil
	}

	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     s.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("qdrant: create collection %s: %w", s.collection, err)
	}
	return nil
}

// IndexSubmission upserts one submission vector with its scope payload. The
// point id is derived from the submission id so re-grading overwrites.
func (s *QdrantStore) IndexSubmission(ctx context.Context, answerKeyID, submissionID, content string, vec []float32) error {
	pointID := submissionID
	if _, err := uuid.Parse(pointID); err != nil {
		pointID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(submissionID)).String()
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: s.collection,
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDUUID(pointID),
			Vectors: qdrant.NewVectors(vec...),
			Payload: qdrant.NewValueMap(map[string]any{
				"answer_key_id": answerKeyID,
				"submission_id": submissionID,
				"content":       content,
			}),
		}},
	})
	if err != nil {
		return fmt.Errorf("qdrant: upsert submission %s: %w", submissionID, err)
	}
	return nil
}

// Search runs a nearest-neighbor query scoped to one answer key.
func (s *QdrantStore) Search(ctx context.Context, answerKeyID string, vec []float32, limit uint64) ([]Match, error) {
	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: s.collection,
		Query:          qdrant.NewQuery(vec...),
		Limit:          qdrant.PtrOf(limit),
		WithPayload:    qdrant.NewWithPayload(true),
		Filter: &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("answer_key_id", answerKeyID),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant: search collection %s: %w", s.collection, err)
	}

	matches := make([]Match, 0, len(points))
	for _, point := range points {
		match := Match{Score: point.GetScore()}
		for key, value := range point.GetPayload() {
			switch key {
			case "submission_id":
				match.SubmissionID = value.GetStringValue()
			case "answer_key_id":
				match.AnswerKeyID = value.GetStringValue()
			case "content":
				match.Content = value.GetStringValue()
			}
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// Check reports service health and collection state.
func (s *QdrantStore) Check(ctx context.Context) (*Diagnostics, error) {
	if _, err := s.client.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("qdrant: health check: %w", err)
	}

	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("qdrant: list collections: %w", err)
	}

	diag := &Diagnostics{Connected: true, Collections: collections}
	for _, name := range collections {
		if name == s.collection {
			diag.CollectionExists = true
			break
		}
	}
	return diag, nil
}

// Close releases the gRPC connection.
func (s *QdrantStore) Close() error {
	return s.client.Close()
}
