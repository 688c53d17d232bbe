package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/HumNoi1/subjective-assessment-api/internal/models"
	"github.com/HumNoi1/subjective-assessment-api/pkg/config"
	appErrors "github.com/HumNoi1/subjective-assessment-api/pkg/errors"
	"github.com/HumNoi1/subjective-assessment-api/pkg/sessionstore"
)

type authTeacherRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, name, email, passwordHash string) (*models.Teacher, error)
}

type sessionStore interface {
	Issue(ctx context.Context, teacherID, email, name string) (*sessionstore.Session, error)
	Get(ctx context.Context, id string) (*sessionstore.Session, error)
	Touch(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
}

// AuthService provides teacher authentication backed by the session store.
type AuthService struct {
	repo      authTeacherRepository
	sessions  sessionStore
	validator *validator.Validate
	logger    *zap.Logger
	config    config.JWTConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo authTeacherRepository, sessions sessionStore, validate *validator.Validate, logger *zap.Logger, cfg config.JWTConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{repo: repo, sessions: sessions, validator: validate, logger: logger, config: cfg}
}

// Register creates a teacher account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid register payload")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already registered")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, mapStoreError(err, "failed to check email")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher, err := s.repo.Create(ctx, strings.TrimSpace(req.Name), email, string(hash))
	if err != nil {
		return nil, mapStoreError(err, "failed to create teacher")
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID))
	return teacher, nil
}

// Login authenticates a teacher, opens a session and issues a JWT.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	teacher, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return nil, mapStoreError(err, "failed to fetch teacher")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	session, err := s.sessions.Issue(ctx, teacher.ID, teacher.Email, teacher.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open session")
	}

	token, err := s.generateToken(teacher, session.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		SessionID:   session.ID,
		IssuedAt:    time.Now().UTC(),
		Teacher: models.TeacherInfo{
			ID:    teacher.ID,
			Name:  teacher.Name,
			Email: teacher.Email,
		},
	}, nil
}

// Logout revokes the session carried by the claims.
func (s *AuthService) Logout(ctx context.Context, claims *models.JWTClaims) error {
	if err := s.sessions.Revoke(ctx, claims.SessionID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

// Refresh re-issues a token for a still-live session and extends it.
func (s *AuthService) Refresh(ctx context.Context, claims *models.JWTClaims) (*models.LoginResponse, error) {
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}
	if err := s.sessions.Touch(ctx, session.ID); err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	teacher, err := s.repo.FindByID(ctx, session.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "teacher no longer exists")
		}
		return nil, mapStoreError(err, "failed to fetch teacher")
	}

	token, err := s.generateToken(teacher, session.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		SessionID:   session.ID,
		IssuedAt:    time.Now().UTC(),
		Teacher: models.TeacherInfo{
			ID:    teacher.ID,
			Name:  teacher.Name,
			Email: teacher.Email,
		},
	}, nil
}

// CurrentTeacher loads the profile behind the claims.
func (s *AuthService) CurrentTeacher(ctx context.Context, claims *models.JWTClaims) (*models.Teacher, error) {
	teacher, err := s.repo.FindByID(ctx, claims.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, mapStoreError(err, "failed to fetch teacher")
	}
	return teacher, nil
}

// ValidateToken parses the JWT and checks the backing session is still live.
// Any session-store failure counts as no session.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}

	if _, err := s.sessions.Get(ctx, claims.SessionID); err != nil {
		if !errors.Is(err, sessionstore.ErrNotFound) {
			s.logger.Warn("session store unreachable, treating as no session", zap.Error(err))
		}
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired")
	}

	return claims, nil
}

func (s *AuthService) generateToken(teacher *models.Teacher, sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &models.JWTClaims{
		TeacherID: teacher.ID,
		SessionID: sessionID,
		Email:     teacher.Email,
		Name:      teacher.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   teacher.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}
