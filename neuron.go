// Package neuron is a content-gating engine built with Go, Echo, and templ.
// Visitors subscribe by email (optionally gated behind confirming a YouTube
// channel subscription) before premium content unlocks; public items render
// unconditionally. An admin dashboard manages content, attachments, and the
// channel configuration.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// neuron handles the handler logic, middleware, gating, and database
// operations.
package neuron

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home          func(items []ContentItem, siteURL string) templ.Component
	Content       func(item ContentItem, siteURL string) templ.Component
	ContentLocked func(item ContentItem, d Decision, email, errMsg, csrfToken string) templ.Component

	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(items []ContentItem, subs []SubscriptionRecord, message, csrfToken string) templ.Component
	AdminForm      func(item ContentItem, csrfToken string) templ.Component
	AdminConfig    func(cfg ChannelConfig, hasConfig bool, adminEmail, message, csrfToken string) templ.Component

	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central neuron application. It wires together the store, cache,
// gate, verifier, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *ContentCache
	Gate     *Gate
	Verifier *Verifier
	Views    ViewFuncs

	loginLimiter     *AttemptLimiter
	subscribeLimiter *AttemptLimiter
	customRoutes     []func(*App)
	staticDir        string
}

// New creates a neuron App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the store, cache, gate, middleware, and routes, then
// starts the server.
func (a *App) Start() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("neuron: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("neuron: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewContentCache(a.Store, a.Config.ContentCacheTTL)
	a.Gate = NewGate(a.Store)
	a.Verifier = NewVerifier(a.Config.OAuthClientID, a.Config.OAuthClientSecret,
		a.Config.OAuthRedirectURL, a.Config.YoutubeAPIKey)

	a.loginLimiter = NewAttemptLimiter(5, time.Minute)
	a.subscribeLimiter = NewAttemptLimiter(20, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework assets ship embedded and are served under /public/ alongside
	// the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/gate.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/content/:id/", a.handleContent)
	e.POST("/content/:id/subscribe/", a.handleSubscribe)
	e.POST("/content/:id/confirm/", a.handleConfirm)
	e.GET("/content/:id/files/:fileID/", a.handleAttachment)
	e.GET("/auth/callback", a.handleOAuthCallback)

	// Admin routes: session-protected dashboard for content and config.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/content/:id/", a.handleAdminContent)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/content/:id/delete/", a.handleAdminDelete)
	e.POST("/admin/content/:id/files/:fileID/delete/", a.handleAdminDeleteAttachment)
	e.GET("/admin/config/", a.handleAdminConfig)
	e.POST("/admin/config/", a.handleAdminConfigSave)
	e.POST("/admin/credentials/", a.handleAdminCredentials)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}
