package neuron

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (a *App) handleHome(c echo.Context) error {
	items, err := a.Cache.ListContent()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(items, a.Config.URL))
}

// handleContent serves a single content item behind the access gate. Premium
// items render the locked view with the subscribe form until the gate grants.
func (a *App) handleContent(c echo.Context) error {
	item, err := a.Cache.GetContent(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	email := ViewerEmail(c)
	d, err := a.Gate.Evaluate(item, email)
	if err != nil {
		return err
	}
	if d.State == AccessGranted {
		return Render(c, a.Views.Content(item, a.Config.URL))
	}
	errMsg := ""
	if c.QueryParam("verify") == "failed" {
		errMsg = "We couldn't confirm your channel subscription. Please try again."
	}
	return Render(c, a.Views.ContentLocked(item, d, email, errMsg, CsrfToken(c)))
}

// handleSubscribe takes the viewer's email for a premium item. With channel
// gating off this already unlocks; with gating on the viewer is sent to the
// channel-confirmation step (verified when OAuth is configured, self-reported
// otherwise).
func (a *App) handleSubscribe(c echo.Context) error {
	item, err := a.Cache.GetContent(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	if !a.subscribeLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many attempts. Try again later.")
	}
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	if !ValidEmail(email) {
		a.subscribeLimiter.Record(c.RealIP())
		d, err := a.Gate.Evaluate(item, "")
		if err != nil {
			return err
		}
		return Render(c, a.Views.ContentLocked(item, d, email, "Enter a valid email address.", CsrfToken(c)))
	}
	if err := setViewerEmail(c, email); err != nil {
		return err
	}
	d, err := a.Gate.Subscribe(item, email)
	if err != nil {
		return err
	}
	if d.State == AccessGranted {
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/")
	}
	if a.Verifier.Enabled() {
		state := uuid.NewString()
		if err := setOAuthPending(c, state, item.ID); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, a.Verifier.AuthURL(state))
	}
	return Render(c, a.Views.ContentLocked(item, d, email, "", CsrfToken(c)))
}

// handleConfirm records the self-reported channel confirmation. Disabled when
// server-side verification is configured; then the OAuth callback is the only
// path to a confirmed ledger row.
func (a *App) handleConfirm(c echo.Context) error {
	if a.Verifier.Enabled() {
		return c.String(http.StatusForbidden, "Channel confirmation requires verification.")
	}
	item, err := a.Cache.GetContent(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	email := ViewerEmail(c)
	if email == "" {
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/")
	}
	if _, err := a.Gate.Confirm(item, email); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/")
}

// handleOAuthCallback completes the verified confirmation flow: it exchanges
// the authorization code, asks the YouTube Data API whether the viewer is
// subscribed to the gated channel, and only then writes the confirmed row.
func (a *App) handleOAuthCallback(c echo.Context) error {
	if !a.Verifier.Enabled() {
		return c.NoContent(http.StatusNotFound)
	}
	state, contentID := takeOAuthPending(c)
	if state == "" || state != c.QueryParam("state") || contentID == "" {
		return c.String(http.StatusForbidden, "Invalid state")
	}
	item, err := a.Store.GetContent(contentID)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	email := ViewerEmail(c)
	if email == "" {
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/")
	}

	ctx := c.Request().Context()
	tok, err := a.Verifier.Exchange(ctx, c.QueryParam("code"))
	if err != nil {
		c.Logger().Errorf("oauth exchange: %v", err)
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/?verify=failed")
	}
	d, err := a.Gate.Evaluate(item, email)
	if err != nil {
		return err
	}
	channelID, err := a.Verifier.ResolveChannelID(ctx, d.ChannelURL)
	if err != nil {
		c.Logger().Errorf("resolve channel: %v", err)
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/?verify=failed")
	}
	subscribed, err := a.Verifier.IsSubscribed(ctx, tok, channelID)
	if err != nil {
		c.Logger().Errorf("verify subscription: %v", err)
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/?verify=failed")
	}
	if !subscribed {
		return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/?verify=failed")
	}
	if _, err := a.Gate.Confirm(item, email); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/content/"+item.ID+"/")
}

// handleAttachment streams one attachment's bytes. The gate applies here too,
// otherwise premium files would leak through direct links.
func (a *App) handleAttachment(c echo.Context) error {
	item, err := a.Cache.GetContent(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	d, err := a.Gate.Evaluate(item, ViewerEmail(c))
	if err != nil {
		return err
	}
	if d.State != AccessGranted {
		return c.NoContent(http.StatusForbidden)
	}
	fileID := c.Param("fileID")
	for _, att := range item.Attachments {
		if att.ID != fileID {
			continue
		}
		mediaType, data, err := DecodeDataURI(att.URL)
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+att.Name+`"`)
		return c.Blob(http.StatusOK, mediaType, data)
	}
	return c.NoContent(http.StatusNotFound)
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.Cache.ListPublic()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, items)
}

func (a *App) handleFeed(c echo.Context) error {
	items, err := a.Cache.ListPublic()
	if err != nil {
		return err
	}
	return a.renderRSS(c, items)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
