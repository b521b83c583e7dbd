package neuron

// ContentItem is the core content type stored in SQLite and rendered by templates.
// Premium items (IsPublic false) are hidden behind the access gate; public items
// render unconditionally.
type ContentItem struct {
	ID                string
	Title             string
	Description       string
	Body              string // Markdown source
	CreatedAt         string // RFC 3339
	IsPublic          bool
	YoutubeChannelURL string // per-item override of the configured channel, may be empty
	Attachments       []Attachment
}

// Attachment is a file owned by exactly one content item. The file bytes are
// carried inline in URL as a data URI, so the row is self-contained.
type Attachment struct {
	ID         string
	ContentID  string
	Name       string
	Type       string // media type, e.g. "application/pdf"
	Size       int64
	URL        string // data URI
	UploadedAt string // RFC 3339
}

// SubscriptionRecord is one row of the subscription ledger. Records are
// upserted by ID, never by (email, content): re-subscribing with a fresh ID
// adds a row rather than replacing the earlier one.
type SubscriptionRecord struct {
	ID                string
	Email             string
	ContentID         string
	SubscribedAt      string // RFC 3339
	YoutubeSubscribed bool   // confirmed channel subscription
}

// ChannelConfig is the singleton YouTube channel configuration. Absence of a
// row (or Enabled false) keeps channel gating inactive for the whole site.
type ChannelConfig struct {
	ChannelURL  string
	ChannelName string
	Enabled     bool
}
