package neuron

import "testing"

func TestChannelIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://youtube.com/channel/UCxyz123", "UCxyz123"},
		{"https://www.youtube.com/channel/UCxyz123/videos", "UCxyz123"},
		{"https://youtube.com/@somehandle", "somehandle"},
		{"https://youtube.com/@somehandle/about", "somehandle"},
		{"https://youtube.com/c/CustomName", ""},
		{"https://youtube.com/user/OldStyle", ""},
		{"not a url at all ://", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ChannelIDFromURL(tt.url); got != tt.want {
			t.Errorf("ChannelIDFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestVerifierDisabledWithoutClient(t *testing.T) {
	if NewVerifier("", "", "", "").Enabled() {
		t.Error("verifier without client credentials must be disabled")
	}
	if NewVerifier("id", "", "", "").Enabled() {
		t.Error("verifier with only a client ID must be disabled")
	}
	if !NewVerifier("id", "secret", "http://localhost/auth/callback", "").Enabled() {
		t.Error("verifier with full client credentials should be enabled")
	}
}
