package token

import (
	"testing"
	"time"

	"resbook/pkg/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var testTime = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testUser() *model.User {
	return &model.User{
		ID:    "65f1a2b3c4d5e6f7a8b9c0d1",
		Email: "alice@example.com",
		Roles: []string{model.RoleUser},
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := NewManagerWithClock(testSecret, time.Hour, func() time.Time { return testTime })

	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	identity, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}

	if identity.OwnerID != "65f1a2b3c4d5e6f7a8b9c0d1" {
		t.Errorf("OwnerID = %q, want %q", identity.OwnerID, "65f1a2b3c4d5e6f7a8b9c0d1")
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", identity.Email, "alice@example.com")
	}
	if !identity.HasRole(model.RoleUser) {
		t.Error("expected USER role to survive the round trip")
	}
	if identity.IsAdmin() {
		t.Error("identity should not be admin")
	}
}

func TestVerify_Expired(t *testing.T) {
	issued := NewManagerWithClock(testSecret, time.Hour, func() time.Time { return testTime })
	signed, err := issued.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	later := NewManagerWithClock(testSecret, time.Hour, func() time.Time { return testTime.Add(2 * time.Hour) })
	if _, err := later.Verify(signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewManagerWithClock(testSecret, time.Hour, func() time.Time { return testTime })
	signed, err := m.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := NewManagerWithClock("ffffffffffffffffffffffffffffffff", time.Hour, func() time.Time { return testTime })
	if _, err := other.Verify(signed); err == nil {
		t.Fatal("expected token signed with a different secret to be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager(testSecret, time.Hour)
	if _, err := m.Verify("not-a-token"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
