package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestManager_IssueAndVerify(t *testing.T) {
	m := NewManager("test-secret-at-least-16-chars")
	uid := uuid.New()

	token, err := m.Issue(uid, "João", "joao@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	gotID, claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if gotID != uid {
		t.Errorf("Verify() user id = %v, want %v", gotID, uid)
	}
	if claims.Name != "João" || claims.Email != "joao@example.com" {
		t.Errorf("claims = %+v, want name/email preserved", claims)
	}
}

func TestManager_VerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("issuer-secret-16-chars-long")
	verifier := NewManager("another-secret-16-chars-long")

	token, err := issuer.Issue(uuid.New(), "x", "x@example.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if _, _, err := verifier.Verify(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestManager_VerifyRejectsGarbage(t *testing.T) {
	m := NewManager("test-secret-at-least-16-chars")
	if _, _, err := m.Verify("not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3nh4-forte")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "s3nh4-forte" {
		t.Fatal("password stored in plain text")
	}
	if err := VerifyPassword(hash, "s3nh4-forte"); err != nil {
		t.Errorf("VerifyPassword() rejected correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong"); err == nil {
		t.Error("VerifyPassword() accepted wrong password")
	}
}
