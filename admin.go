package neuron

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")
	ok, err := a.Store.CheckAdminCredentials(email, password)
	if err != nil {
		return err
	}
	if !ok {
		a.loginLimiter.Record(c.RealIP())
		return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminContent(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	item, err := a.Store.GetContent(c.Param("id"))
	if err != nil {
		if err == ErrNotFound {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminForm(item, CsrfToken(c)))
}

// handleAdminSave upserts a content item from the dashboard form, including
// any newly uploaded attachment files.
func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+is+required.")
	}

	id := strings.TrimSpace(c.FormValue("id"))
	createdAt := time.Now().UTC().Format(time.RFC3339)
	attachments := []Attachment{}
	if id == "" {
		id = uuid.NewString()
	} else if existing, err := a.Store.GetContent(id); err == nil {
		createdAt = existing.CreatedAt
		attachments = existing.Attachments
	} else if err != ErrNotFound {
		return err
	}

	uploaded, err := a.collectUploads(c, id)
	if err != nil {
		return err
	}
	attachments = append(attachments, uploaded...)

	item := ContentItem{
		ID:                id,
		Title:             title,
		Description:       c.FormValue("description"),
		Body:              c.FormValue("body"),
		CreatedAt:         createdAt,
		IsPublic:          c.FormValue("is_public") != "",
		YoutubeChannelURL: strings.TrimSpace(c.FormValue("youtube_channel_url")),
		Attachments:       attachments,
	}
	if err := a.Store.SaveContent(item); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

// collectUploads reads uploaded attachment files from the multipart form.
// A form without files is fine; it yields an empty slice.
func (a *App) collectUploads(c echo.Context, contentID string) ([]Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if err == http.ErrNotMultipart || err == http.ErrMissingBoundary {
			return nil, nil
		}
		return nil, err
	}
	var out []Attachment
	for _, fh := range form.File["attachments"] {
		if fh.Size > maxUploadSize {
			return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "attachment too large")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
		f.Close()
		if err != nil {
			return nil, err
		}
		mediaType := fh.Header.Get("Content-Type")
		if mediaType == "" {
			mediaType = "application/octet-stream"
		}
		out = append(out, NewAttachment(contentID, fh.Filename, mediaType, data))
	}
	return out, nil
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeleteContent(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleAdminDeleteAttachment(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeleteAttachment(c.Param("fileID")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/admin/content/"+c.Param("id")+"/")
}

func (a *App) handleAdminConfig(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return a.renderAdminConfig(c, c.QueryParam("msg"))
}

func (a *App) handleAdminConfigSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	cfg := ChannelConfig{
		ChannelURL:  strings.TrimSpace(c.FormValue("channel_url")),
		ChannelName: strings.TrimSpace(c.FormValue("channel_name")),
		Enabled:     c.FormValue("enabled") != "",
	}
	if cfg.ChannelURL == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/config/?msg=Channel+URL+is+required.")
	}
	if err := a.Store.SaveChannelConfig(cfg); err != nil {
		return err
	}
	return a.renderAdminConfig(c, "saved")
}

// handleAdminCredentials rotates the admin login. The check contract stays a
// boolean match; only the stored representation is a bcrypt hash.
func (a *App) handleAdminCredentials(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")
	if !ValidEmail(email) || len(password) < 8 {
		return c.Redirect(http.StatusSeeOther, "/admin/config/?msg=Need+a+valid+email+and+a+password+of+8%2B+characters.")
	}
	if err := a.Store.SetAdminCredential(email, password); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/config/?msg=Credentials+updated.")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	items, err := a.Store.ListContent()
	if err != nil {
		return err
	}
	subs, err := a.Store.ListSubscriptions()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(items, subs, msg, CsrfToken(c)))
}

func (a *App) renderAdminConfig(c echo.Context, msg string) error {
	cfg, err := a.Store.GetChannelConfig()
	hasConfig := true
	if err == ErrNotFound {
		cfg, hasConfig, err = ChannelConfig{}, false, nil
	}
	if err != nil {
		return err
	}
	adminEmail, err := a.Store.AdminEmail()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminConfig(cfg, hasConfig, adminEmail, msg, CsrfToken(c)))
}
