package authjwt

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	authdomain "github.com/sh4ner/streamerpulse/app/modules/auth/domain"
)

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "test-secret-at-least-32-chars-long!!"
	}
	p := NewProvider(secret, "streamerpulse")

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		provider    Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name: "success",
			token: func(t *testing.T) string {
				return mustGenerate(t, p, "ops@example.com", authdomain.RoleAdmin, time.Hour)
			},
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.Subject != "ops@example.com" {
					t.Errorf("expected subject ops@example.com, got %s", validated.Subject)
				}
				if !validated.IsAdmin() {
					t.Errorf("expected admin role, got %s", validated.Role)
				}
				if validated.Issuer != "streamerpulse" {
					t.Errorf("expected issuer streamerpulse, got %s", validated.Issuer)
				}
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return mustGenerate(t, p, "ops", authdomain.RoleAdmin, -time.Hour)
			},
			expectedErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				return mustGenerate(t, p, "ops", authdomain.RoleAdmin, time.Hour)
			},
			provider:    NewProvider("wrong-secret", "streamerpulse"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name: "foreign issuer",
			token: func(t *testing.T) string {
				return mustGenerate(t, NewProvider(secret, "someone-else"), "ops", authdomain.RoleAdmin, time.Hour)
			},
			expectedErr: ErrInvalidIssuer,
		},
		{
			name: "non-HMAC algorithm rejected",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"role": "admin", "iss": "streamerpulse"})
				s, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
				if err != nil {
					t.Fatalf("failed to build token: %v", err)
				}
				return s
			},
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			token:       func(t *testing.T) string { return "not.a.jwt" },
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.token(t)

			validateTarget := p
			if tt.provider != nil {
				validateTarget = tt.provider
			}

			validatedClaims, err := validateTarget.ValidateToken(token)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.verify != nil {
				tt.verify(t, validatedClaims)
			}
		})
	}
}

func mustGenerate(t *testing.T, p Provider, subject string, role authdomain.Role, ttl time.Duration) string {
	t.Helper()
	token, err := p.GenerateToken(subject, role, ttl)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}
