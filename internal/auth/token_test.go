package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

const testSecret = "unit-test-secret-with-enough-bytes"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tm := NewTokenManager(testSecret).WithClock(fixedClock(now))

	token, exp, err := tm.IssueAccessToken("sub-1", "tester", domain.RoleWholesaler, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", claims.SubjectID())
	assert.Equal(t, "tester", claims.UserID)
	assert.Equal(t, domain.RoleWholesaler, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_RefreshTokenCarriesNoRole(t *testing.T) {
	tm := NewTokenManager(testSecret)

	token, _, err := tm.IssueRefreshToken("sub-1", time.Hour)
	require.NoError(t, err)

	claims, err := tm.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "sub-1", claims.Subject)
	assert.Empty(t, claims.UserID)
	assert.False(t, claims.Role.Valid())
}

func TestTokenManager_TokensIssuedInSameSecondDiffer(t *testing.T) {
	tm := NewTokenManager(testSecret).WithClock(fixedClock(time.Unix(1_700_000_000, 0)))

	a, _, err := tm.IssueRefreshToken("sub-1", time.Hour)
	require.NoError(t, err)
	b, _, err := tm.IssueRefreshToken("sub-1", time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenManager_DecodeRejects(t *testing.T) {
	now := time.Now()
	tm := NewTokenManager(testSecret).WithClock(fixedClock(now))
	valid, _, err := tm.IssueAccessToken("sub-1", "tester", domain.RoleRetailer, time.Minute)
	require.NoError(t, err)

	expired, _, err := NewTokenManager(testSecret).
		WithClock(fixedClock(now.Add(-time.Hour))).
		IssueAccessToken("sub-1", "tester", domain.RoleRetailer, time.Minute)
	require.NoError(t, err)

	otherKey, _, err := NewTokenManager("another-secret-value-entirely-here").
		IssueAccessToken("sub-1", "tester", domain.RoleRetailer, time.Minute)
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "sub-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"expired":       expired,
		"wrong key":     otherKey,
		"none alg":      noneAlg,
		"garbage":       "not-a-jwt",
		"empty":         "",
		"truncated sig": valid[:len(valid)-4],
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tm.Decode(token)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrTokenInvalid())
		})
	}
}

func TestTokenManager_ExtractSubjectIgnoresExpiry(t *testing.T) {
	now := time.Now()
	expired, _, err := NewTokenManager(testSecret).
		WithClock(fixedClock(now.Add(-48*time.Hour))).
		IssueRefreshToken("sub-9", time.Hour)
	require.NoError(t, err)

	tm := NewTokenManager(testSecret)
	_, err = tm.Decode(expired)
	require.Error(t, err)

	subject, err := tm.ExtractSubject(expired)
	require.NoError(t, err)
	assert.Equal(t, "sub-9", subject)

	_, err = NewTokenManager("another-secret-value-entirely-here").ExtractSubject(expired)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid())
}

func TestTokenManager_IssueValidatesInput(t *testing.T) {
	tm := NewTokenManager(testSecret)

	_, _, err := tm.IssueAccessToken("", "tester", domain.RoleAgent, time.Hour)
	assert.Error(t, err)

	_, _, err = tm.IssueRefreshToken("sub-1", 0)
	assert.Error(t, err)
}
