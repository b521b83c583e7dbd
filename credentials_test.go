package neuron

import "testing"

func TestCheckAdminCredentials(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		email    string
		password string
		want     bool
	}{
		{DefaultAdminEmail, "admin123", true},
		{DefaultAdminEmail, "wrong", false},
		{"other@example.com", "admin123", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, err := s.CheckAdminCredentials(tt.email, tt.password)
		if err != nil {
			t.Fatalf("CheckAdminCredentials(%q, %q) failed: %v", tt.email, tt.password, err)
		}
		if got != tt.want {
			t.Errorf("CheckAdminCredentials(%q, %q) = %v, want %v", tt.email, tt.password, got, tt.want)
		}
	}
}

func TestPasswordsStoredHashed(t *testing.T) {
	s := setupTestStore(t)

	var stored string
	if err := s.db.QueryRow(`SELECT password_hash FROM admin_credentials LIMIT 1`).Scan(&stored); err != nil {
		t.Fatalf("read credential row: %v", err)
	}
	if stored == "admin123" {
		t.Fatal("password must not be stored in plaintext")
	}
}

func TestSetAdminCredentialRotates(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SetAdminCredential("owner@example.com", "new-password-1"); err != nil {
		t.Fatalf("SetAdminCredential failed: %v", err)
	}

	ok, err := s.CheckAdminCredentials(DefaultAdminEmail, "admin123")
	if err != nil {
		t.Fatalf("CheckAdminCredentials failed: %v", err)
	}
	if ok {
		t.Error("old credential should be replaced")
	}
	ok, err = s.CheckAdminCredentials("owner@example.com", "new-password-1")
	if err != nil {
		t.Fatalf("CheckAdminCredentials failed: %v", err)
	}
	if !ok {
		t.Error("new credential should match")
	}

	email, err := s.AdminEmail()
	if err != nil {
		t.Fatalf("AdminEmail failed: %v", err)
	}
	if email != "owner@example.com" {
		t.Errorf("AdminEmail = %q, want owner@example.com", email)
	}
}
