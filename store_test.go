package neuron

import (
	"path/filepath"
	"testing"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestStoreSeedsDefaultAdmin(t *testing.T) {
	s := setupTestStore(t)

	ok, err := s.CheckAdminCredentials(DefaultAdminEmail, "admin123")
	if err != nil {
		t.Fatalf("CheckAdminCredentials failed: %v", err)
	}
	if !ok {
		t.Error("seeded default admin credential should match")
	}
}

func TestStoreSeedOnlyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	if err := s.SetAdminCredential("owner@example.com", "a-long-password"); err != nil {
		t.Fatalf("SetAdminCredential failed: %v", err)
	}
	s.Close()

	// Reopening must not re-seed the default credential.
	s, err = NewStore(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer s.Close()
	ok, err := s.CheckAdminCredentials(DefaultAdminEmail, "admin123")
	if err != nil {
		t.Fatalf("CheckAdminCredentials failed: %v", err)
	}
	if ok {
		t.Error("default credential should stay gone after rotation")
	}
	ok, err = s.CheckAdminCredentials("owner@example.com", "a-long-password")
	if err != nil {
		t.Fatalf("CheckAdminCredentials failed: %v", err)
	}
	if !ok {
		t.Error("rotated credential should survive reopen")
	}
}

func TestUnopenedStoreFailsFast(t *testing.T) {
	var s Store

	if _, err := s.ListContent(); err != ErrNotInitialized {
		t.Errorf("ListContent on unopened store: got %v, want ErrNotInitialized", err)
	}
	if _, err := s.GetContent("x"); err != ErrNotInitialized {
		t.Errorf("GetContent on unopened store: got %v, want ErrNotInitialized", err)
	}
	if err := s.SaveSubscription(SubscriptionRecord{}); err != ErrNotInitialized {
		t.Errorf("SaveSubscription on unopened store: got %v, want ErrNotInitialized", err)
	}
	if _, err := s.GetChannelConfig(); err != ErrNotInitialized {
		t.Errorf("GetChannelConfig on unopened store: got %v, want ErrNotInitialized", err)
	}
	if _, err := s.CheckAdminCredentials("a", "b"); err != ErrNotInitialized {
		t.Errorf("CheckAdminCredentials on unopened store: got %v, want ErrNotInitialized", err)
	}
}

func TestClosedStoreFailsFast(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	s.Close()

	if _, err := s.ListContent(); err != ErrNotInitialized {
		t.Errorf("ListContent after Close: got %v, want ErrNotInitialized", err)
	}
}

func TestChannelConfigAbsentThenSaved(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetChannelConfig(); err != ErrNotFound {
		t.Fatalf("absent config: got %v, want ErrNotFound", err)
	}

	cfg := ChannelConfig{
		ChannelURL:  "https://youtube.com/channel/UCxyz",
		ChannelName: "My Channel",
		Enabled:     true,
	}
	if err := s.SaveChannelConfig(cfg); err != nil {
		t.Fatalf("SaveChannelConfig failed: %v", err)
	}
	got, err := s.GetChannelConfig()
	if err != nil {
		t.Fatalf("GetChannelConfig failed: %v", err)
	}
	if got != cfg {
		t.Errorf("config round trip: got %+v, want %+v", got, cfg)
	}

	// Singleton: saving again replaces, never adds.
	cfg.Enabled = false
	if err := s.SaveChannelConfig(cfg); err != nil {
		t.Fatalf("SaveChannelConfig failed: %v", err)
	}
	got, err = s.GetChannelConfig()
	if err != nil {
		t.Fatalf("GetChannelConfig failed: %v", err)
	}
	if got.Enabled {
		t.Error("config should reflect the latest save")
	}
}
