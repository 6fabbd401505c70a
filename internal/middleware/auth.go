package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/delciomanico/Monanji/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type ctxKey int

const userCtxKey ctxKey = iota

// WithUser returns a context carrying the authenticated user. Exported for
// handler tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

// UserFrom extracts the authenticated user from the request context.
func UserFrom(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*models.User)
	return u, ok && u != nil
}

// Auth resolves bearer tokens to database-backed users.
type Auth struct {
	db     *pgxpool.Pool
	secret string
	logger *zap.SugaredLogger
}

// NewAuth creates the auth middleware.
func NewAuth(db *pgxpool.Pool, secret string, logger *zap.SugaredLogger) *Auth {
	return &Auth{db: db, secret: secret, logger: logger}
}

// Require rejects requests without a valid token for an active user.
func (a *Auth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, errCode, errMsg := a.resolve(r)
		if user == nil {
			if errCode == "" {
				errCode, errMsg = "UNAUTHORIZED", "Access token required"
			}
			writeError(w, http.StatusUnauthorized, errCode, errMsg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Optional attaches the user when a valid token is present and lets the
// request through anonymously otherwise. An expired or malformed token is
// still rejected so callers never silently lose their identity.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, errCode, errMsg := a.resolve(r)
		if user == nil {
			writeError(w, http.StatusUnauthorized, errCode, errMsg)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireRole allows only authenticated users holding one of the roles.
// Must be mounted after Require.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFrom(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
		})
	}
}

// resolve parses the bearer token and loads the user row. Returns a nil user
// plus a stable error code/message when the request cannot be authenticated.
func (a *Auth) resolve(r *http.Request) (*models.User, string, string) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, "UNAUTHORIZED", "Access token required"
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, "TOKEN_EXPIRED", "Token has expired"
		}
		return nil, "UNAUTHORIZED", "Invalid token"
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, "UNAUTHORIZED", "Invalid token"
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, "UNAUTHORIZED", "Invalid token"
	}

	var user models.User
	row := a.db.QueryRow(r.Context(), `
		SELECT id, email, full_name, phone, bi_number, role, is_active, created_at
		FROM users WHERE id = $1
	`, userID)
	if err := row.Scan(&user.ID, &user.Email, &user.FullName, &user.Phone,
		&user.BINumber, &user.Role, &user.IsActive, &user.CreatedAt); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			a.logger.Errorw("Auth user lookup failed", "error", err)
		}
		return nil, "UNAUTHORIZED", "Invalid or inactive user"
	}
	if !user.IsActive {
		return nil, "UNAUTHORIZED", "Invalid or inactive user"
	}

	return &user, "", ""
}
