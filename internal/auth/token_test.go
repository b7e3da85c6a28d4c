package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestTokens(t *testing.T, secret string, clock *fakeClock) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager(secret, time.Hour, WithClock(clock.Now))
	require.NoError(t, err)
	return tm
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	require.Error(t, err)
}

func TestIssueVerifyRoundtrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := newTestTokens(t, "secret", clock)
	id := uuid.NewString()

	session, err := tm.Issue(domain.UserIdentity(id, "a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, session.Role)
	assert.Equal(t, clock.now.Add(time.Hour), session.ExpiresAt)

	claims, err := tm.Verify(session.Token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.Equal(t, domain.UserIdentity(id, "a@x.com"), claims.Identity())
	assert.Equal(t, clock.now.Unix(), claims.IssuedAt.Unix())
}

func TestIssueRejectsAnonymous(t *testing.T) {
	tm := newTestTokens(t, "secret", &fakeClock{now: time.Now()})
	_, err := tm.Issue(domain.Anonymous())
	require.Error(t, err)
}

func TestVerifyFailureKinds(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := newTestTokens(t, "secret", clock)
	other := newTestTokens(t, "other-secret", clock)
	identity := domain.AdminIdentity(uuid.NewString(), "root@x.com")

	valid, err := tm.Issue(identity)
	require.NoError(t, err)
	forged, err := other.Issue(identity)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		Role:             domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: identity.ID(), ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))},
	})
	noneToken, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(valid.Token, ".")
	truncated := parts[0] + "." + parts[1]

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", ErrTokenMissing},
		{"garbage", "not-a-token", ErrTokenMalformed},
		{"truncated", truncated, ErrTokenMalformed},
		{"bad signature", forged.Token, ErrTokenBadSignature},
		{"alg none", noneToken, ErrTokenBadSignature},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Verify(tc.token)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tm := newTestTokens(t, "secret", clock)
	other := newTestTokens(t, "other-secret", clock)
	identity := domain.UserIdentity(uuid.NewString(), "a@x.com")

	session, err := tm.Issue(identity)
	require.NoError(t, err)
	forged, err := other.Issue(identity)
	require.NoError(t, err)

	clock.now = clock.now.Add(2 * time.Hour)

	_, err = tm.Verify(session.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, "expired", FailureKind(err))

	// Signature is checked first: an expired forgery is still a forgery.
	_, err = tm.Verify(forged.Token)
	assert.ErrorIs(t, err, ErrTokenBadSignature)
}

func TestVerifyRoleMismatch(t *testing.T) {
	tm := newTestTokens(t, "secret", &fakeClock{now: time.Now()})
	session, err := tm.Issue(domain.UserIdentity(uuid.NewString(), "a@x.com"))
	require.NoError(t, err)

	_, err = tm.VerifyRole(session.Token, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = tm.VerifyRole(session.Token, domain.RoleUser)
	assert.NoError(t, err)
}

func TestVerifyRejectsNonUUIDSubject(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestTokens(t, "secret", clock)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "42", ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour))},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestVerifyRequiresExpiry(t *testing.T) {
	tm := newTestTokens(t, "secret", &fakeClock{now: time.Now()})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:             domain.RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{Subject: uuid.NewString()},
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Verify(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestFailureKind(t *testing.T) {
	assert.Equal(t, "", FailureKind(nil))
	assert.Equal(t, "missing", FailureKind(ErrTokenMissing))
	assert.Equal(t, "bad_signature", FailureKind(ErrTokenBadSignature))
	assert.Equal(t, "stale", FailureKind(ErrSessionStale))
	assert.Equal(t, "malformed", FailureKind(ErrTokenMalformed))
}

func sessionFor(token string, expires time.Time) domain.Session {
	return domain.Session{Token: token, Role: domain.RoleAdmin, ExpiresAt: expires}
}
