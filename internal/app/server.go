package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"devtoolshub/internal/appearance"
	"devtoolshub/internal/catalog"
	"devtoolshub/internal/content"
	"devtoolshub/internal/router"
)

const (
	visitorCookie    = "visitor"
	colorSchemeHint  = "Sec-CH-Prefers-Color-Scheme"
	maxQueryLength   = 128
	visitorCookieAge = 365 * 24 * time.Hour
)

// Deps are the collaborators a Server needs. Zero fields get defaults.
type Deps struct {
	Library *content.Library
	Prefs   appearance.Store
	Table   *router.Table
	Logger  *zap.Logger
	Metrics *Metrics
}

// Server wires handlers, templates, and the content library together.
type Server struct {
	cfg       Config
	logger    *zap.Logger
	metrics   *Metrics
	table     *router.Table
	library   *content.Library
	renderer  *content.HTMLRenderer
	prefs     appearance.Store
	templates map[string]*template.Template
	mux       *http.ServeMux
	handler   http.Handler
}

// NewServer constructs an HTTP handler ready to serve the site.
func NewServer(cfg Config, deps Deps) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = NewMetrics()
	}
	if deps.Table == nil {
		deps.Table = router.Default()
	}
	if deps.Prefs == nil {
		deps.Prefs = appearance.NewMemoryStore()
	}
	if deps.Library == nil {
		deps.Library, err = content.Load()
		if err != nil {
			return nil, fmt.Errorf("load content: %w", err)
		}
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.APIBurst < 1 {
		cfg.APIBurst = 1
	}

	srv := &Server{
		cfg:       cfg,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		table:     deps.Table,
		library:   deps.Library,
		renderer:  content.NewHTMLRenderer(cfg.CodeStyle),
		prefs:     deps.Prefs,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	limit := rate.Inf
	if cfg.APIRate > 0 {
		limit = rate.Limit(cfg.APIRate)
	}
	limiter := rate.NewLimiter(limit, cfg.APIBurst)

	srv.mux.Handle("GET /static/", noDirListing(http.FileServerFS(staticFS)))
	srv.mux.HandleFunc("GET /healthz", srv.handleHealth)
	srv.mux.Handle("GET /api/tools", rateLimit(limiter, srv.metrics, http.HandlerFunc(srv.handleAPITools)))
	srv.mux.HandleFunc("POST /appearance/toggle", srv.handleToggle)
	if cfg.MetricsEnabled {
		srv.mux.Handle("GET /metrics", srv.metrics.Handler())
	}
	srv.mux.HandleFunc("GET /", srv.handlePage)
	srv.mux.HandleFunc("/", srv.handleOtherMethod)

	srv.handler = accessLog(srv.logger, srv.mux)
	return srv, nil
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on the configured port until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("devtoolshub listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		s.logger.Info("devtoolshub stopped")
		return nil
	})
	return g.Wait()
}

type navLink struct {
	Title  string
	Path   string
	Icon   string
	Active bool
}

type shellView struct {
	Title       string
	Mode        string
	CurrentPath string
	BaseURL     string
	Nav         []navLink
}

type homeView struct {
	Shell shellView
	Hero  template.HTML
	Query string
	Tools []catalog.Entry
	Total int
}

type toolView struct {
	Shell shellView
	Page  *content.Page
}

type notFoundView struct {
	Shell shellView
	Path  string
}

func (s *Server) shell(title, current string, mode appearance.Mode) shellView {
	entries := catalog.All()
	nav := make([]navLink, 0, len(entries))
	for _, e := range entries {
		nav = append(nav, navLink{Title: e.Title, Path: e.Path, Icon: e.Icon, Active: e.Path == current})
	}
	return shellView{
		Title:       title,
		Mode:        mode.String(),
		CurrentPath: current,
		BaseURL:     s.cfg.BaseURL,
		Nav:         nav,
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	u := s.table.Resolve(r.URL.Path)
	s.metrics.observeRoute(u)
	if rec, ok := w.(*statusRecorder); ok {
		rec.route = u.Kind.String()
	}

	mode := s.appearanceFor(w, r)
	w.Header().Set("Accept-CH", colorSchemeHint)
	w.Header().Add("Vary", colorSchemeHint)

	switch u.Kind {
	case router.KindHome:
		s.renderHome(w, r, mode)
	case router.KindTool:
		s.renderTool(w, r, u, mode)
	default:
		s.render(w, http.StatusNotFound, notFoundTemplate, notFoundView{
			Shell: s.shell("Page not found", u.Path, mode),
			Path:  u.Path,
		})
	}
}

// handleOtherMethod answers non-GET requests. Registered routes report 405;
// everything else is the not-found page.
func (s *Server) handleOtherMethod(w http.ResponseWriter, r *http.Request) {
	if s.table.Has(r.URL.Path) {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	s.handlePage(w, r)
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, mode appearance.Mode) {
	query := searchQuery(r)
	tools := catalog.Filter(catalog.All(), query)
	if query != "" {
		s.metrics.observeSearch("web", len(tools))
	}

	s.render(w, http.StatusOK, homeTemplate, homeView{
		Shell: s.shell("Home", router.HomePath, mode),
		Hero:  heroHTML(),
		Query: query,
		Tools: tools,
		Total: catalog.Len(),
	})
}

func (s *Server) renderTool(w http.ResponseWriter, r *http.Request, u router.Unit, mode appearance.Mode) {
	bundle, ok := s.library.ForUnit(u)
	if !ok {
		s.logger.Error("route without content", zap.String("path", u.Path))
		http.Error(w, "missing content", http.StatusInternalServerError)
		return
	}

	page, err := s.renderer.Render(bundle)
	if err != nil {
		s.logger.Error("render tutorial", zap.String("path", u.Path), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	if from := r.URL.Query().Get("from"); from != "" {
		if origin := s.table.Resolve("/" + from); origin.Kind == router.KindTool {
			s.metrics.RelatedFollows.WithLabelValues(origin.Tool.Slug(), u.Tool.Slug()).Inc()
		}
	}

	s.render(w, http.StatusOK, toolTemplate, toolView{
		Shell: s.shell(page.Entry.Title, u.Path, mode),
		Page:  page,
	})
}

// render executes into a buffer so template failures never leave a half
// written page behind.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleAPITools(w http.ResponseWriter, r *http.Request) {
	query := searchQuery(r)
	tools := catalog.Filter(catalog.All(), query)
	if tools == nil {
		tools = []catalog.Entry{}
	}
	if query != "" {
		s.metrics.observeSearch("api", len(tools))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tools); err != nil {
		s.logger.Warn("encode tools", zap.Error(err))
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	visitor := s.visitorID(w, r)

	current, err := appearance.Resolve(ctx, s.prefs, visitor, systemPreference(r))
	if err != nil {
		s.storeError("load", err)
	}
	next := current.Toggle()
	if err := s.prefs.Save(ctx, visitor, next); err != nil {
		s.storeError("save", err)
	}
	s.metrics.AppearanceToggles.WithLabelValues(next.String()).Inc()

	http.Redirect(w, r, returnPath(r.FormValue("return")), http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// appearanceFor resolves the visitor's mode. Store failures fall back to the
// system preference or the default.
func (s *Server) appearanceFor(w http.ResponseWriter, r *http.Request) appearance.Mode {
	visitor := s.visitorID(w, r)
	mode, err := appearance.Resolve(r.Context(), s.prefs, visitor, systemPreference(r))
	if err != nil {
		s.storeError("load", err)
	}
	return mode
}

func (s *Server) storeError(op string, err error) {
	s.metrics.StoreErrors.WithLabelValues(op).Inc()
	s.logger.Warn("appearance store", zap.String("op", op), zap.Error(err))
}

// visitorID returns the visitor cookie, issuing a fresh one when it is missing
// or malformed.
func (s *Server) visitorID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(visitorCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(visitorCookieAge / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func systemPreference(r *http.Request) appearance.Preference {
	hint := strings.Trim(r.Header.Get(colorSchemeHint), `" `)
	if hint == "" {
		return appearance.Preference{}
	}
	m, err := appearance.Parse(hint)
	if err != nil {
		return appearance.Preference{}
	}
	return appearance.System(m)
}

func searchQuery(r *http.Request) string {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) <= maxQueryLength {
		return q
	}
	cut := maxQueryLength
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return q[:cut]
}

// returnPath only allows local absolute paths so the toggle form cannot be used
// as an open redirect.
func returnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return router.HomePath
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return router.HomePath
	}
	return raw
}
