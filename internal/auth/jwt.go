package auth

import (
	"net/http"
	"time"

	"github.com/anonto42/social-admin/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	// CookieName is the HTTP-only cookie carrying the session token
	CookieName = "token"
	// TokenTTL is how long an issued token and its cookie stay valid
	TokenTTL = 24 * time.Hour
)

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager signs and verifies the admin session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

// NewTokenManager creates a TokenManager; secure marks the cookie Secure (production).
func NewTokenManager(secret string, secure bool) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    TokenTTL,
		secure: secure,
		now:    time.Now,
	}
}

// Issue generates a signed token for the given user
func (m *TokenManager) Issue(user *models.User) (string, error) {
	now := m.now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// Parse verifies the signature, algorithm and expiry of a token and returns its claims
func (m *TokenManager) Parse(tokenString string) (*models.JwtCustomClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &models.JwtCustomClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	if !token.Valid || claims.ExpiresAt == nil || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Cookie builds the session cookie for a freshly issued token
func (m *TokenManager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  m.now().Add(m.ttl),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds a cookie that makes the browser drop the session token
func (m *TokenManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
