package neuron

import (
	"time"

	"github.com/google/uuid"
)

// AccessState is the per-(viewer, content) gate state.
type AccessState int

const (
	// AccessUnknown is the initial state before any evaluation.
	AccessUnknown AccessState = iota
	// AccessChecking marks an evaluation in flight against the ledger.
	AccessChecking
	// AccessGranted allows the viewer to see the item body and attachments.
	AccessGranted
	// AccessPending means the viewer still owes an action: supplying an
	// email, or confirming the channel subscription. It is retryable.
	AccessPending
)

func (s AccessState) String() string {
	switch s {
	case AccessChecking:
		return "checking"
	case AccessGranted:
		return "granted"
	case AccessPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Decision is the gate's answer for one (viewer, content) pair. When channel
// gating applies, ChannelURL and ChannelName carry the channel the viewer is
// asked to subscribe to: the item's override if set, else the configured one.
type Decision struct {
	State          AccessState
	RequireChannel bool
	ChannelURL     string
	ChannelName    string
}

// Gate decides whether a viewer may see a content item, combining the item's
// visibility flag, the subscription ledger, and the channel configuration.
type Gate struct {
	store *Store
}

// NewGate creates a Gate backed by the given store.
func NewGate(s *Store) *Gate {
	return &Gate{store: s}
}

// gatingFor resolves whether channel gating applies to the item and which
// channel the viewer is asked to subscribe to.
func (g *Gate) gatingFor(item ContentItem) (bool, ChannelConfig, error) {
	cfg, err := g.store.channelConfigOrNone()
	if err != nil {
		return false, ChannelConfig{}, err
	}
	if !cfg.Enabled {
		return false, cfg, nil
	}
	if item.YoutubeChannelURL != "" {
		cfg.ChannelURL = item.YoutubeChannelURL
	}
	return true, cfg, nil
}

// Evaluate runs the gate for a content item and a viewer email. Public items
// are granted unconditionally. For premium items the ledger is consulted:
// with channel gating active only a confirmed row grants access, otherwise
// any row does. An empty email can never resolve to granted.
func (g *Gate) Evaluate(item ContentItem, email string) (Decision, error) {
	if item.IsPublic {
		return Decision{State: AccessGranted}, nil
	}
	gated, cfg, err := g.gatingFor(item)
	if err != nil {
		return Decision{State: AccessUnknown}, err
	}
	d := Decision{
		State:          AccessChecking,
		RequireChannel: gated,
		ChannelURL:     cfg.ChannelURL,
		ChannelName:    cfg.ChannelName,
	}
	if email == "" {
		d.State = AccessPending
		return d, nil
	}
	var ok bool
	if gated {
		ok, err = g.store.HasConfirmedAccess(email, item.ID)
	} else {
		ok, err = g.store.HasSubscription(email, item.ID)
	}
	if err != nil {
		return Decision{State: AccessUnknown}, err
	}
	if ok {
		d.State = AccessGranted
	} else {
		d.State = AccessPending
	}
	return d, nil
}

// Subscribe handles a submitted email for a premium item. With channel gating
// off it writes an unconfirmed ledger row, which is sufficient for access.
// With gating on nothing is written yet: the decision stays pending until
// Confirm records the channel subscription.
func (g *Gate) Subscribe(item ContentItem, email string) (Decision, error) {
	d, err := g.Evaluate(item, email)
	if err != nil || d.State == AccessGranted {
		return d, err
	}
	if d.RequireChannel {
		return d, nil
	}
	if err := g.record(item.ID, email, false); err != nil {
		return Decision{State: AccessUnknown}, err
	}
	d.State = AccessGranted
	return d, nil
}

// Confirm records a confirmed channel subscription for (email, item) and
// grants access. Callers are responsible for how the confirmation was
// obtained: self-reported or verified against the YouTube API.
func (g *Gate) Confirm(item ContentItem, email string) (Decision, error) {
	if err := g.record(item.ID, email, true); err != nil {
		return Decision{State: AccessUnknown}, err
	}
	return g.Evaluate(item, email)
}

func (g *Gate) record(contentID, email string, confirmed bool) error {
	return g.store.SaveSubscription(SubscriptionRecord{
		ID:                uuid.NewString(),
		Email:             email,
		ContentID:         contentID,
		SubscribedAt:      time.Now().UTC().Format(time.RFC3339),
		YoutubeSubscribed: confirmed,
	})
}
