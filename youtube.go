package neuron

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Verifier checks a viewer's claimed channel subscription against the
// YouTube Data API after a Google OAuth consent flow. When no OAuth client
// is configured the gate falls back to the self-reported confirmation,
// which trusts the viewer's word: that mode performs no verification at all.
type Verifier struct {
	oauth  *oauth2.Config
	apiKey string
}

// NewVerifier builds a Verifier from OAuth client credentials. Either
// clientID or clientSecret empty disables server-side verification. apiKey
// is optional and only needed to resolve handle-style channel URLs.
func NewVerifier(clientID, clientSecret, redirectURL, apiKey string) *Verifier {
	v := &Verifier{apiKey: apiKey}
	if clientID != "" && clientSecret != "" {
		v.oauth = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
			Endpoint:     google.Endpoint,
		}
	}
	return v
}

// Enabled reports whether server-side verification is configured.
func (v *Verifier) Enabled() bool {
	return v != nil && v.oauth != nil
}

// AuthURL returns the Google consent URL for the given opaque state token.
func (v *Verifier) AuthURL(state string) string {
	return v.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for a token.
func (v *Verifier) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := v.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// IsSubscribed walks the authenticated viewer's subscription list, page by
// page, looking for channelID.
func (v *Verifier) IsSubscribed(ctx context.Context, tok *oauth2.Token, channelID string) (bool, error) {
	svc, err := youtube.NewService(ctx, option.WithTokenSource(v.oauth.TokenSource(ctx, tok)))
	if err != nil {
		return false, fmt.Errorf("youtube service: %w", err)
	}
	pageToken := ""
	for {
		call := svc.Subscriptions.List([]string{"snippet"}).Mine(true).MaxResults(50)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Context(ctx).Do()
		if err != nil {
			return false, fmt.Errorf("list subscriptions: %w", err)
		}
		for _, item := range resp.Items {
			if item.Snippet != nil && item.Snippet.ResourceId != nil &&
				item.Snippet.ResourceId.ChannelId == channelID {
				return true, nil
			}
		}
		if resp.NextPageToken == "" {
			return false, nil
		}
		pageToken = resp.NextPageToken
	}
}

// ResolveChannelID turns a channel URL into a channel ID. /channel/UC… URLs
// resolve locally; handle and custom URLs fall back to a search API lookup,
// which needs the API key.
func (v *Verifier) ResolveChannelID(ctx context.Context, channelURL string) (string, error) {
	if id := ChannelIDFromURL(channelURL); strings.HasPrefix(id, "UC") {
		return id, nil
	}
	if v == nil || v.apiKey == "" {
		return "", fmt.Errorf("cannot resolve channel id for %q without an API key", channelURL)
	}
	svc, err := youtube.NewService(ctx, option.WithAPIKey(v.apiKey))
	if err != nil {
		return "", fmt.Errorf("youtube service: %w", err)
	}
	resp, err := svc.Search.List([]string{"snippet"}).Type("channel").Q(channelURL).MaxResults(1).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("resolve channel: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", fmt.Errorf("no channel found for %q", channelURL)
	}
	return resp.Items[0].Snippet.ChannelId, nil
}

// ChannelIDFromURL extracts the channel identifier embedded in a YouTube
// channel URL. /channel/<id> URLs yield the ID directly; /@handle URLs yield
// the handle, which still needs API resolution. Anything else yields "".
func ChannelIDFromURL(channelURL string) string {
	u, err := url.Parse(channelURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if i := strings.Index(p, "/channel/"); i >= 0 {
		id := p[i+len("/channel/"):]
		if j := strings.IndexByte(id, '/'); j >= 0 {
			id = id[:j]
		}
		return id
	}
	if i := strings.Index(p, "/@"); i >= 0 {
		handle := p[i+2:]
		if j := strings.IndexByte(handle, '/'); j >= 0 {
			handle = handle[:j]
		}
		return handle
	}
	return ""
}
