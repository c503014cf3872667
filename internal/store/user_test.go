// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u := testStaff(t, db)
	if u.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if !u.IsStaff {
		t.Error("expected is_staff=true")
	}
	if u.TOTPEnabled {
		t.Error("expected totp_enabled=false for new user")
	}
	if u.PasswordHash == "secret123" {
		t.Error("password hash must not be plaintext")
	}

	found, err := s.FindByEmail(ctx, u.Email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != u.ID {
		t.Errorf("id: got %s, want %s", found.ID, u.ID)
	}
	if !s.CheckPassword(found, "secret123") {
		t.Error("CheckPassword rejected the correct password")
	}
	if s.CheckPassword(found, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}

	if _, err := s.FindByEmail(ctx, "nobody@store-test.local"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing email: got %v, want ErrNotFound", err)
	}
	if _, err := s.FindByID(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing id: got %v, want ErrNotFound", err)
	}
}

func TestUserStoreTOTPLifecycle(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := testStaff(t, db)

	if err := s.SetTOTPSecret(ctx, u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	if err := s.EnableTOTP(ctx, u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}

	found, _ := s.FindByID(ctx, u.ID)
	if found.TOTPSecret == nil || *found.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("totp secret: got %v", found.TOTPSecret)
	}
	if !found.TOTPEnabled || found.Needs2FASetup() {
		t.Error("expected 2FA enabled")
	}

	if err := s.ResetTOTP(ctx, u.ID); err != nil {
		t.Fatalf("ResetTOTP: %v", err)
	}
	found, _ = s.FindByID(ctx, u.ID)
	if found.TOTPSecret != nil || found.TOTPEnabled {
		t.Error("expected 2FA cleared after reset")
	}

	if err := s.EnableTOTP(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("EnableTOTP unknown user: got %v, want ErrNotFound", err)
	}
}

func TestUserStoreRecordLogin(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := testStaff(t, db)

	first, err := s.RecordLogin(ctx, u.ID)
	if err != nil {
		t.Fatalf("first RecordLogin: %v", err)
	}
	if first != nil {
		t.Errorf("first login: got previous %v, want nil", first)
	}

	found, _ := s.FindByID(ctx, u.ID)
	if found.LastLoginAt == nil {
		t.Fatal("last_login_at not stamped")
	}

	second, err := s.RecordLogin(ctx, u.ID)
	if err != nil {
		t.Fatalf("second RecordLogin: %v", err)
	}
	if second == nil || !second.Equal(*found.LastLoginAt) {
		t.Errorf("second login: got previous %v, want %v", second, found.LastLoginAt)
	}

	if _, err := s.RecordLogin(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user: got %v, want ErrNotFound", err)
	}
}

func TestUserStorePasswords(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := testStaff(t, db)

	if _, err := s.Create(ctx, "short-"+uuid.NewString()[:8]+"@store-test.local", "1234567", "Short", true); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("Create with short password: got %v, want ErrWeakPassword", err)
	}
	if err := s.SetPassword(ctx, u.ID, "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("SetPassword short: got %v, want ErrWeakPassword", err)
	}

	if err := s.SetPassword(ctx, u.ID, "sharadiya-2025"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	found, _ := s.FindByID(ctx, u.ID)
	if !s.CheckPassword(found, "sharadiya-2025") || s.CheckPassword(found, "secret123") {
		t.Error("password not replaced")
	}

	if err := s.SetPassword(ctx, uuid.New(), "long-enough"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPassword unknown user: got %v, want ErrNotFound", err)
	}
}

func TestUserStoreListStaff(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	staff := testStaff(t, db)

	visitor, err := s.Create(ctx, "visitor-"+uuid.NewString()[:8]+"@store-test.local", "secret123", "Visitor", false)
	if err != nil {
		t.Fatalf("create visitor: %v", err)
	}
	t.Cleanup(func() { s.Delete(ctx, visitor.ID) })

	users, err := s.ListStaff(ctx)
	if err != nil {
		t.Fatalf("ListStaff: %v", err)
	}
	var sawStaff bool
	for _, u := range users {
		if u.ID == visitor.ID {
			t.Error("non-staff account listed")
		}
		if u.ID == staff.ID {
			sawStaff = true
		}
	}
	if !sawStaff {
		t.Error("staff account missing from list")
	}
}
