package auth

import (
	"strings"
	"testing"
	"time"
)

func newJWTer(ttl time.Duration) *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "lawlink", TTL: ttl}
}

func TestIssueParse_Roundtrip(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, err := j.Issue("u1", "a@x.com", "CLIENT", "A")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	c, err := j.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UID != "u1" || c.Email != "a@x.com" || c.Role != "CLIENT" || c.Name != "A" {
		t.Fatalf("claims mismatch: %+v", c)
	}
}

func TestParse_Expired(t *testing.T) {
	j := newJWTer(-time.Minute) // 已过期
	tok, err := j.Issue("u1", "a@x.com", "CLIENT", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if c, err := j.Parse(tok); err == nil {
		t.Fatalf("expected expired token to fail, got claims %+v", c)
	}
}

func TestParse_BadSignature(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, _ := j.Issue("u1", "a@x.com", "CLIENT", "")
	other := &JWTer{Secret: []byte("other-secret"), Issuer: "lawlink", TTL: time.Hour}
	if _, err := other.Parse(tok); err == nil {
		t.Fatalf("expected bad signature to fail")
	}
}

func TestParse_Malformed(t *testing.T) {
	j := newJWTer(time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := j.Parse(tok); err == nil {
			t.Fatalf("expected malformed token %q to fail", tok)
		}
	}
}

func TestParse_WrongIssuer(t *testing.T) {
	other := &JWTer{Secret: []byte("test-secret"), Issuer: "someone-else", TTL: time.Hour}
	tok, _ := other.Issue("u1", "a@x.com", "CLIENT", "")
	j := newJWTer(time.Hour)
	if _, err := j.Parse(tok); err == nil {
		t.Fatalf("expected issuer mismatch to fail")
	}
}

func TestRefresh_SlidingRenewal(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, _ := j.Issue("u1", "a@x.com", "LAWYER", "B")
	fresh, err := j.Refresh(tok)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	c, err := j.Parse(fresh)
	if err != nil {
		t.Fatalf("parse refreshed: %v", err)
	}
	if c.UID != "u1" || c.Role != "LAWYER" || c.Name != "B" {
		t.Fatalf("refreshed claims mismatch: %+v", c)
	}
}

func TestRefresh_ExpiredFails(t *testing.T) {
	j := newJWTer(-time.Minute)
	tok, _ := j.Issue("u1", "a@x.com", "CLIENT", "")
	if _, err := j.Refresh(tok); err == nil {
		t.Fatalf("expected refresh of expired token to fail")
	}
}

func TestIssue_TokenShape(t *testing.T) {
	j := newJWTer(time.Hour)
	tok, _ := j.Issue("u1", "a@x.com", "CLIENT", "")
	if strings.Count(tok, ".") != 2 {
		t.Fatalf("expected compact JWS, got %q", tok)
	}
}
