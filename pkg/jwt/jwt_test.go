package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestService(t *testing.T) *Service {
	t.Helper()
	return newTestServiceWithExpiration(t, 15*time.Minute)
}

func newTestServiceWithExpiration(t *testing.T, expiration time.Duration) *Service {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	return NewTestService(privateKey, "test-issuer", expiration)
}

// ============================================================================
// Sign Tests
// ============================================================================

func TestSign_ValidClaims_ReturnsToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{UserID: "user:1", Email: "a@example.com", Role: "member"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(strings.Split(token, ".")) != 3 {
		t.Errorf("expected three token segments, got %q", token)
	}
}

func TestSign_NilPrivateKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{issuer: "test-issuer"}

	_, err := svc.Sign(Claims{})
	if err != ErrInvalidKey {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestSign_SetsStandardClaims(t *testing.T) {
	t.Parallel()
	svc := newTestServiceWithExpiration(t, 30*time.Minute)
	before := time.Now().Add(-time.Second)

	token, err := svc.Sign(Claims{UserID: "user:1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %q", claims.Issuer)
	}
	if claims.Subject != "user:1" {
		t.Errorf("expected subject user:1, got %q", claims.Subject)
	}
	if claims.IssuedAt == nil || claims.IssuedAt.Before(before) {
		t.Errorf("unexpected issued at %v", claims.IssuedAt)
	}
	exp := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if exp < 29*time.Minute || exp > 31*time.Minute {
		t.Errorf("expected ~30m expiration, got %v", exp)
	}
}

func TestSign_PreservesCustomExpiration(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)
	custom := time.Now().Add(2 * time.Hour).Truncate(time.Second)

	token, err := svc.Sign(Claims{RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(custom)}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !claims.ExpiresAt.Equal(custom) {
		t.Errorf("expected expiration %v, got %v", custom, claims.ExpiresAt)
	}
}

// ============================================================================
// Validate Tests
// ============================================================================

func TestValidate_ValidToken_ReturnsClaims(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(Claims{UserID: "user:1", Email: "a@example.com", Username: "ana", Role: "admin"})
	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if claims.Email != "a@example.com" || claims.UserID != "user:1" || claims.Username != "ana" {
		t.Errorf("claims not preserved: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Error("expected admin claims")
	}
}

func TestValidate_NilPublicKey_ReturnsErrInvalidKey(t *testing.T) {
	t.Parallel()
	svc := &Service{}

	_, err := svc.Validate("a.b.c")
	if err != ErrInvalidKey {
		t.Errorf("expected ErrInvalidKey, got %v", err)
	}
}

func TestValidate_Malformed_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.@@@.###"} {
		if _, err := svc.Validate(token); err != ErrInvalidToken {
			t.Errorf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestValidate_Expired_ReturnsErrTokenExpired(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, _ := svc.Sign(Claims{RegisteredClaims: gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})

	if _, err := svc.Validate(token); err != ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidate_OtherKey_ReturnsErrInvalidSignature(t *testing.T) {
	t.Parallel()
	signer := newTestService(t)
	verifier := newTestService(t)

	token, _ := signer.Sign(Claims{Email: "a@example.com"})

	if _, err := verifier.Validate(token); err != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestValidate_WrongIssuer_ReturnsErrInvalidToken(t *testing.T) {
	t.Parallel()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	signer := NewTestService(privateKey, "someone-else", time.Minute)
	verifier := NewTestService(privateKey, "test-issuer", time.Minute)

	token, _ := signer.Sign(Claims{Email: "a@example.com"})

	if _, err := verifier.Validate(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidate_HS256_Rejected(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	forged := gojwt.NewWithClaims(gojwt.SigningMethodHS256, Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Issuer:    "test-issuer",
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "admin",
	})
	token, err := forged.SignedString([]byte("guess"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.Validate(token); err == nil {
		t.Error("expected HS256 token to be rejected")
	}
}

// ============================================================================
// Key File Tests
// ============================================================================

func TestNewService_FromGeneratedKeys(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("generate: %v", err)
	}

	signer, err := NewService(Config{PrivateKeyPath: privPath, Issuer: "agora", ExpirationMins: 5})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	verifier, err := NewService(Config{PublicKeyPath: pubPath, Issuer: "agora"})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}

	token, err := signer.Sign(Claims{Email: "a@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.Validate(token); err != nil {
		t.Errorf("validate: %v", err)
	}
	if _, err := verifier.Sign(Claims{}); err != ErrInvalidKey {
		t.Errorf("public-key-only service must not sign, got %v", err)
	}
}

func TestNewService_MissingKeyFile(t *testing.T) {
	t.Parallel()

	_, err := NewService(Config{PrivateKeyPath: filepath.Join(t.TempDir(), "missing.pem")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
