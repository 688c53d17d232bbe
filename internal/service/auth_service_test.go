package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/sessionstore"
)

type mockTeacherRepo struct {
	byEmail     *models.Teacher
	byID        *models.Teacher
	byEmailErr  error
	byIDErr     error
	created     *models.Teacher
	createErr   error
	createdName string
}

func (m *mockTeacherRepo) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	if m.byEmailErr != nil {
		return nil, m.byEmailErr
	}
	return m.byEmail, nil
}

func (m *mockTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	if m.byIDErr != nil {
		return nil, m.byIDErr
	}
	return m.byID, nil
}

func (m *mockTeacherRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.Teacher, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.createdName = name
	if m.created != nil {
		return m.created, nil
	}
	return &models.Teacher{ID: "t1", Name: name, Email: email, PasswordHash: passwordHash}, nil
}

type mockSessionStore struct {
	sessions map[string]*sessionstore.Session
	issueErr error
	getErr   error
	revoked  []string
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*sessionstore.Session)}
}

func (m *mockSessionStore) Issue(ctx context.Context, teacherID, email, name string) (*sessionstore.Session, error) {
	if m.issueErr != nil {
		return nil, m.issueErr
	}
	session := &sessionstore.Session{ID: "sess-1", TeacherID: teacherID, Email: email, Name: name, IssuedAt: time.Now()}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (*sessionstore.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	session, ok := m.sessions[id]
	if !ok {
		return nil, sessionstore.ErrNotFound
	}
	return session, nil
}

func (m *mockSessionStore) Touch(ctx context.Context, id string) error {
	if _, ok := m.sessions[id]; !ok {
		return sessionstore.ErrNotFound
	}
	return nil
}

func (m *mockSessionStore) Revoke(ctx context.Context, id string) error {
	delete(m.sessions, id)
	m.revoked = append(m.revoked, id)
	return nil
}

func jwtTestConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret", Expiration: time.Hour, Issuer: "test"}
}

func TestAuthServiceRegisterHashesPassword(t *testing.T) {
	repo := &mockTeacherRepo{byEmailErr: sql.ErrNoRows}
	svc := NewAuthService(repo, newMockSessionStore(), validator.New(), zap.NewNop(), jwtTestConfig())

	teacher, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Teacher A",
		Email:    "A@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", teacher.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte("password123")))
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &mockTeacherRepo{byEmail: &models.Teacher{ID: "t1", Email: "a@example.com"}}
	svc := NewAuthService(repo, newMockSessionStore(), validator.New(), zap.NewNop(), jwtTestConfig())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Teacher A",
		Email:    "a@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginOpensSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockTeacherRepo{byEmail: &models.Teacher{ID: "t1", Name: "Teacher A", Email: "a@example.com", PasswordHash: string(hash)}}
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions, validator.New(), zap.NewNop(), jwtTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "sess-1", res.SessionID)
	assert.Len(t, sessions.sessions, 1)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockTeacherRepo{byEmail: &models.Teacher{ID: "t1", Email: "a@example.com", PasswordHash: string(hash)}}
	svc := NewAuthService(repo, newMockSessionStore(), validator.New(), zap.NewNop(), jwtTestConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRequiresLiveSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockTeacherRepo{byEmail: &models.Teacher{ID: "t1", Name: "Teacher A", Email: "a@example.com", PasswordHash: string(hash)}}
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions, validator.New(), zap.NewNop(), jwtTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "t1", claims.TeacherID)

	require.NoError(t, svc.Logout(context.Background(), claims))

	_, err = svc.ValidateToken(context.Background(), res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenStoreDownMeansNoSession(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	repo := &mockTeacherRepo{byEmail: &models.Teacher{ID: "t1", Name: "Teacher A", Email: "a@example.com", PasswordHash: string(hash)}}
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions, validator.New(), zap.NewNop(), jwtTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "password"})
	require.NoError(t, err)

	sessions.getErr = errors.New("connection refused")

	_, err = svc.ValidateToken(context.Background(), res.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRefreshReissuesToken(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	teacher := &models.Teacher{ID: "t1", Name: "Teacher A", Email: "a@example.com", PasswordHash: string(hash)}
	repo := &mockTeacherRepo{byEmail: teacher, byID: teacher}
	sessions := newMockSessionStore()
	svc := NewAuthService(repo, sessions, validator.New(), zap.NewNop(), jwtTestConfig())

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(context.Background(), res.AccessToken)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, res.SessionID, refreshed.SessionID)
	assert.NotEmpty(t, refreshed.AccessToken)
}
