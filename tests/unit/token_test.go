package unit

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adotaqui/platform-service/internal/adapters/security"
	"github.com/adotaqui/platform-service/internal/ports"
)

func newVerifierPair(t *testing.T) (*rsa.PrivateKey, *security.JWTVerifier) {
	t.Helper()
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	der, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	verifier, err := security.NewJWTVerifier(string(pemBytes))
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	return privateKey, verifier
}

func TestTokenVerifierRoundtrip(t *testing.T) {
	t.Parallel()

	signer, err := security.NewEphemeralJWTSigner()
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	now := time.Now().UTC()
	raw, err := signer.Sign(ports.AuthClaims{
		UserID:    "user-1",
		OngID:     "ong-1",
		Email:     "admin@abrigo.org",
		Role:      "ong_admin",
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := signer.Verifier.ParseAndValidate(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.OngID != "ong-1" || claims.Role != "ong_admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenVerifierRejectsMissingExpiry(t *testing.T) {
	t.Parallel()

	privateKey, verifier := newVerifierPair(t)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"user_id": "user-1",
		"ong_id":  "ong-1",
	}).SignedString(privateKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.ParseAndValidate(raw); err == nil {
		t.Fatal("a correctly signed token without exp must be rejected")
	}
}

func TestTokenVerifierToleratesMissingIssuedAt(t *testing.T) {
	t.Parallel()

	privateKey, verifier := newVerifierPair(t)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"user_id": "user-1",
		"ong_id":  "ong-1",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(privateKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := verifier.ParseAndValidate(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !claims.IssuedAt.IsZero() {
		t.Fatalf("iat was never set, got %v", claims.IssuedAt)
	}
	if claims.OngID != "ong-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenVerifierRejectsExpired(t *testing.T) {
	t.Parallel()

	privateKey, verifier := newVerifierPair(t)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"ong_id": "ong-1",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	}).SignedString(privateKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.ParseAndValidate(raw); err == nil {
		t.Fatal("expired token must be rejected")
	}
}
