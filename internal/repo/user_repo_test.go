package repo

import (
	"context"
	"errors"
	"testing"
)

func TestCreateUser_AndLookups(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "alice@example.com", "$2a$10$hash")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected ID to be assigned")
	}

	byEmail, err := GetUserByEmail(ctx, db, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != u.ID || byEmail.PasswordHash != "$2a$10$hash" {
		t.Fatalf("unexpected row: %+v", byEmail)
	}

	byID, err := GetUser(ctx, db, u.ID)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Fatalf("unexpected email %q", byID.Email)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "bob@example.com", "h1"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := CreateUser(ctx, db, "bob@example.com", "h2"); err == nil {
		t.Fatal("expected error on duplicate email")
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := GetUser(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := GetUserByEmail(ctx, db, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
