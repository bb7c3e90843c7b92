package common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{"valid username", func() error { return ValidateUsername("alice_99") }, false},
		{"username too short", func() error { return ValidateUsername("al") }, true},
		{"username with spaces", func() error { return ValidateUsername("alice smith") }, true},
		{"valid email", func() error { return ValidateEmail("alice@example.com") }, false},
		{"email case insensitive", func() error { return ValidateEmail("Alice@Example.COM") }, false},
		{"email without domain", func() error { return ValidateEmail("alice@") }, true},
		{"valid password", func() error { return ValidatePassword("Password123") }, false},
		{"password too short", func() error { return ValidatePassword("abc12") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	require.Equal(t, 404, HTTPStatus(NotFoundf("user %s", "u-1")))
	require.Equal(t, 409, HTTPStatus(Conflictf("already applied")))
	require.Equal(t, 401, HTTPStatus(ErrUnauthorized))
	require.Equal(t, 400, HTTPStatus(Invalidf("bad input")))
	require.Equal(t, 500, HTTPStatus(errors.New("disk on fire")))
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("u-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)

	_, err = ValidToken(token + "tampered")
	require.Error(t, err)
}

func TestTokenExpiry(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("u-1", -time.Minute)
	require.NoError(t, err)

	_, err = ValidToken(token)
	require.Error(t, err)
}

func TestStringListStorage(t *testing.T) {
	v, err := StringList{"go", "jazz"}.Value()
	require.NoError(t, err)

	var got StringList
	require.NoError(t, got.Scan(v))
	require.Equal(t, StringList{"go", "jazz"}, got)

	// NULL column scans to an empty list.
	var empty StringList
	require.NoError(t, empty.Scan(nil))
	require.Empty(t, empty)
}
