package utils

import (
	"testing"
	"time"
)

func TestManagerRoundTrip(t *testing.T) {
	m, err := NewManager("test-signing-key")
	if err != nil {
		t.Fatal(err)
	}

	token, err := m.NewJWT(42, "blogger", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	id, err := m.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Fatalf("want user 42, got %d", id)
	}
}

func TestManagerRejectsWrongKey(t *testing.T) {
	m1, _ := NewManager("key-one")
	m2, _ := NewManager("key-two")

	token, err := m1.NewJWT(7, "advertiser", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m2.Parse(token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestManagerRejectsExpired(t *testing.T) {
	m, _ := NewManager("test-signing-key")

	token, err := m.NewJWT(7, "blogger", -time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestEmptySigningKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty key")
	}
}
