package models

import "testing"

func TestUserTwoFactor(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	tests := []struct {
		name      string
		user      User
		want      TwoFactorState
		needSetup bool
	}{
		{"fresh account", User{}, TwoFactorNone, true},
		{"secret shown", User{TOTPSecret: &secret}, TwoFactorEnrolling, true},
		{"verified", User{TOTPSecret: &secret, TOTPEnabled: true}, TwoFactorActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.TwoFactor(); got != tt.want {
				t.Errorf("TwoFactor: got %q, want %q", got, tt.want)
			}
			if got := tt.user.Needs2FASetup(); got != tt.needSetup {
				t.Errorf("Needs2FASetup: got %v, want %v", got, tt.needSetup)
			}
		})
	}
}

func TestUserName(t *testing.T) {
	u := User{Email: "purohit@example.org"}
	if got := u.Name(); got != u.Email {
		t.Errorf("Name without display name: got %q, want %q", got, u.Email)
	}
	u.DisplayName = "পুরোহিত"
	if got := u.Name(); got != "পুরোহিত" {
		t.Errorf("Name: got %q, want %q", got, "পুরোহিত")
	}
}
