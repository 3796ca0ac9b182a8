package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// TokenManager issues and validates HS256 bearer tokens. The secret is fixed
// at construction.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

// Claims describes the JWT payload. Refresh tokens carry only the
// registered claims.
type Claims struct {
	UserID string      `json:"userId,omitempty"`
	Role   domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SubjectID returns the sub claim.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// IssueAccessToken signs a role-bearing token for the subject.
func (tm *TokenManager) IssueAccessToken(subjectID, loginID string, role domain.Role, ttl time.Duration) (string, time.Time, error) {
	return tm.sign(&Claims{UserID: loginID, Role: role}, subjectID, ttl)
}

// IssueRefreshToken signs a subject-only token. It grants no role.
func (tm *TokenManager) IssueRefreshToken(subjectID string, ttl time.Duration) (string, time.Time, error) {
	return tm.sign(&Claims{}, subjectID, ttl)
}

func (tm *TokenManager) sign(claims *Claims, subjectID string, ttl time.Duration) (string, time.Time, error) {
	if subjectID == "" {
		return "", time.Time{}, errors.New("subject id required")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}
	now := tm.now()
	expiresAt := now.Add(ttl)
	// jti keeps two tokens issued within the same second distinct.
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies signature, structure and expiry. Any failure yields an
// INVALID_TOKEN error.
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	claims, err := tm.parse(tokenStr,
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTokenInvalid(), err)
	}
	return claims, nil
}

// ExtractSubject verifies the signature and returns the sub claim without
// enforcing expiry or optional claims. Use it for identification only.
func (tm *TokenManager) ExtractSubject(tokenStr string) (string, error) {
	claims, err := tm.parse(tokenStr, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrTokenInvalid(), err)
	}
	return claims.Subject, nil
}

func (tm *TokenManager) parse(tokenStr string, opts ...jwt.ParserOption) (claims *Claims, err error) {
	defer func() {
		if r := recover(); r != nil {
			claims, err = nil, errors.New("token parse panicked")
		}
	}()

	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(tm.now),
	)
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("missing subject")
	}
	return claims, nil
}
