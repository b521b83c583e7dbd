package neuron

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatePublicAlwaysGranted(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("pub", "2024-03-01T00:00:00Z", true)
	require.NoError(t, s.SaveContent(item))

	// No email, no ledger rows, channel gating on: none of it matters.
	require.NoError(t, s.SaveChannelConfig(ChannelConfig{
		ChannelURL: "https://youtube.com/channel/UCxyz", Enabled: true,
	}))

	d, err := g.Evaluate(item, "")
	require.NoError(t, err)
	assert.Equal(t, AccessGranted, d.State)
}

func TestGateEmailOnlyWhenNoConfig(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("c1", "2024-03-01T00:00:00Z", false)
	require.NoError(t, s.SaveContent(item))

	// No config row: the form asks for email only, no channel banner.
	d, err := g.Evaluate(item, "")
	require.NoError(t, err)
	assert.Equal(t, AccessPending, d.State)
	assert.False(t, d.RequireChannel)

	// Submitting an email writes an unconfirmed row and grants immediately.
	d, err = g.Subscribe(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessGranted, d.State)

	subs, err := s.ListSubscriptions()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "a@b.com", subs[0].Email)
	assert.False(t, subs[0].YoutubeSubscribed)

	// Re-evaluation keeps granting for that pair.
	d, err = g.Evaluate(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessGranted, d.State)
}

func TestGateChannelRequired(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("c2", "2024-03-01T00:00:00Z", false)
	item.YoutubeChannelURL = "https://youtube.com/channel/UCxyz"
	require.NoError(t, s.SaveContent(item))
	require.NoError(t, s.SaveChannelConfig(ChannelConfig{
		ChannelURL:  "https://youtube.com/channel/UCsite",
		ChannelName: "Site Channel",
		Enabled:     true,
	}))

	// Email alone does not grant and writes nothing.
	d, err := g.Subscribe(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessPending, d.State)
	assert.True(t, d.RequireChannel)
	subs, err := s.ListSubscriptions()
	require.NoError(t, err)
	assert.Empty(t, subs)

	// The item's channel URL overrides the configured one.
	assert.Equal(t, "https://youtube.com/channel/UCxyz", d.ChannelURL)
	assert.Equal(t, "Site Channel", d.ChannelName)

	// Confirmation writes the confirmed row and grants.
	d, err = g.Confirm(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessGranted, d.State)

	subs, err = s.ListSubscriptions()
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.True(t, subs[0].YoutubeSubscribed)
}

func TestGateDisabledConfigBehavesLikeNone(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("c3", "2024-03-01T00:00:00Z", false)
	require.NoError(t, s.SaveContent(item))
	require.NoError(t, s.SaveChannelConfig(ChannelConfig{
		ChannelURL: "https://youtube.com/channel/UCxyz", Enabled: false,
	}))

	d, err := g.Subscribe(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessGranted, d.State)
	assert.False(t, d.RequireChannel)
}

func TestGateUnconfirmedRowInsufficientWhileGated(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("c4", "2024-03-01T00:00:00Z", false)
	require.NoError(t, s.SaveContent(item))

	// Ledger row written while gating was off...
	_, err := g.Subscribe(item, "a@b.com")
	require.NoError(t, err)

	// ...stops sufficing once channel gating turns on.
	require.NoError(t, s.SaveChannelConfig(ChannelConfig{
		ChannelURL: "https://youtube.com/channel/UCxyz", Enabled: true,
	}))
	d, err := g.Evaluate(item, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, AccessPending, d.State)
}

func TestGateEmptyEmailNeverGrants(t *testing.T) {
	s := setupTestStore(t)
	g := NewGate(s)

	item := testItem("c5", "2024-03-01T00:00:00Z", false)
	require.NoError(t, s.SaveContent(item))

	d, err := g.Evaluate(item, "")
	require.NoError(t, err)
	assert.Equal(t, AccessPending, d.State)
}
