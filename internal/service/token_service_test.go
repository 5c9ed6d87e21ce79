package service

import (
	"errors"
	"testing"
	"time"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 15*time.Minute)
	token, err := svc.Issue("research-cli")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Fatalf("expires_in = %d, want 900", token.ExpiresIn)
	}

	claims, err := svc.Parse(token.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.ClientID != "research-cli" || claims.Subject != "research-cli" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenServiceRejectsEmptyClient(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	if _, err := svc.Issue("   "); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Minute).Issue("client")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewTokenService("secret-b", time.Minute).Parse(token.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	svc.ttl = -time.Minute
	token, err := svc.Issue("client")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.Parse(token.Token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}
