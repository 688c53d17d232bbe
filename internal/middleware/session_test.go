package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/internal/service"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	"github.com/HumNoi1/subjective-assessment-api/pkg/sessionstore"
)

type gateTeacherRepo struct {
	teacher *models.Teacher
}

func (m *gateTeacherRepo) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	return m.teacher, nil
}

func (m *gateTeacherRepo) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	return m.teacher, nil
}

func (m *gateTeacherRepo) Create(ctx context.Context, name, email, passwordHash string) (*models.Teacher, error) {
	return m.teacher, nil
}

type gateSessionStore struct {
	sessions map[string]*sessionstore.Session
	getErr   error
}

func (m *gateSessionStore) Issue(ctx context.Context, teacherID, email, name string) (*sessionstore.Session, error) {
	session := &sessionstore.Session{ID: "sess-1", TeacherID: teacherID, Email: email, Name: name, IssuedAt: time.Now()}
	m.sessions[session.ID] = session
	return session, nil
}

func (m *gateSessionStore) Get(ctx context.Context, id string) (*sessionstore.Session, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	session, ok := m.sessions[id]
	if !ok {
		return nil, sessionstore.ErrNotFound
	}
	return session, nil
}

func (m *gateSessionStore) Touch(ctx context.Context, id string) error { return nil }

func (m *gateSessionStore) Revoke(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func buildGate(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &gateTeacherRepo{teacher: &models.Teacher{ID: "t1", Name: "Teacher A", Email: "a@example.com", PasswordHash: string(hash)}}
	sessions := &gateSessionStore{sessions: make(map[string]*sessionstore.Session)}
	auth := service.NewAuthService(repo, sessions, nil, nil, config.JWTConfig{Secret: "secret", Expiration: time.Hour, Issuer: "test"})

	res, err := auth.Login(context.Background(), models.LoginRequest{Email: "a@example.com", Password: "password"})
	require.NoError(t, err)

	r := gin.New()
	secured := r.Group("", SessionGate(auth))
	secured.GET("/protected", func(c *gin.Context) {
		claims := Claims(c)
		c.JSON(http.StatusOK, gin.H{"teacher_id": claims.TeacherID})
	})
	return r, res.AccessToken
}

func TestSessionGateAllowsLiveSession(t *testing.T) {
	r, token := buildGate(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "t1")
}

func TestSessionGateRejectsMissingHeader(t *testing.T) {
	r, _ := buildGate(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestSessionGateRejectsMalformedHeader(t *testing.T) {
	r, token := buildGate(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionGateRejectsGarbageToken(t *testing.T) {
	r, _ := buildGate(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
