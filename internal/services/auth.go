package services

import (
	"context"
	"errors"
	"time"

	"github.com/delciomanico/Monanji/internal/apperr"
	"github.com/delciomanico/Monanji/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles account registration, login and token issuance.
type AuthService struct {
	db         *pgxpool.Pool
	logger     *zap.SugaredLogger
	secret     string
	expiry     time.Duration
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(db *pgxpool.Pool, logger *zap.SugaredLogger, secret string, expiry time.Duration, bcryptCost int) *AuthService {
	return &AuthService{db: db, logger: logger, secret: secret, expiry: expiry, bcryptCost: bcryptCost}
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	BINumber string  `json:"bi_number"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries a fresh token and the public user fields.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a citizen account. Email and BI number are unique; a
// conflict surfaces as a duplicate error.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR bi_number = $2)`,
		req.Email, req.BINumber).Scan(&exists)
	if err != nil {
		return nil, apperr.FromDB(err, "User not found")
	}
	if exists {
		return nil, apperr.New(apperr.KindDuplicate, "USER_EXISTS", "User with this email or BI already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, "INTERNAL_ERROR", "Internal server error", err)
	}

	user := &models.User{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		BINumber: req.BINumber,
		Role:     models.RoleCitizen,
		IsActive: true,
	}
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, full_name, phone, bi_number, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, req.Email, string(hash), req.FullName, req.Phone, req.BINumber, models.RoleCitizen).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		// A concurrent registration can still hit the unique index.
		return nil, apperr.FromDB(err, "User not found")
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("User registered", "id", user.ID, "email", user.Email)
	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	invalid := apperr.New(apperr.KindUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")

	var user models.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, password_hash, full_name, phone, bi_number, role, is_active, created_at
		FROM users WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName,
		&user.Phone, &user.BINumber, &user.Role, &user.IsActive, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, invalid
		}
		return nil, apperr.FromDB(err, "User not found")
	}

	if !user.IsActive {
		return nil, apperr.New(apperr.KindUnauthorized, "ACCOUNT_DISABLED", "Account is disabled")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: &user}, nil
}

// IssueToken signs a JWT for the user.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return "", apperr.Wrap(apperr.KindPersistence, "INTERNAL_ERROR", "Internal server error", err)
	}
	return token, nil
}
