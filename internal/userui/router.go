package userui

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"questserver/internal/auth"
	"questserver/internal/domain"
	"questserver/internal/service"
)

type Opts struct {
	Logger *slog.Logger

	Auth         *service.AuthService
	Profiles     *service.ProfileService
	CookieCodec  auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration
	// FormTTL bounds how long an idle form keeps its username validator.
	FormTTL  time.Duration
	SiteName string
}

func New(opts Opts) http.Handler {
	a, err := newApp(opts)
	if err != nil {
		a.logger.Error("userui: setup failed", "err", err)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
		})
	}
	return a.routes()
}

func newApp(opts Opts) (*app, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Auth == nil || opts.Profiles == nil {
		logger.Warn("userui: missing services", "auth", opts.Auth != nil, "profiles", opts.Profiles != nil)
	}
	if opts.SiteName == "" {
		opts.SiteName = "Quest"
	}
	if opts.FormTTL <= 0 {
		opts.FormTTL = time.Hour
	}

	a := &app{
		logger:       logger,
		authSvc:      opts.Auth,
		profileSvc:   opts.Profiles,
		cookieCodec:  opts.CookieCodec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		siteName:     opts.SiteName,
		forms:        newFormStates(opts.FormTTL),
	}

	t, err := parseTemplates()
	if err != nil {
		return a, err
	}
	a.templates = t

	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		return a, err
	}
	a.static = http.StripPrefix("/app/static/", http.FileServer(http.FS(staticFS)))
	return a, nil
}

func (a *app) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", a.redirectApp)
	mux.HandleFunc("GET /app", a.redirectApp)
	mux.HandleFunc("GET /app/{$}", a.requireAuth(a.handleHome))
	mux.HandleFunc("GET /app/login", a.handleLoginGet)
	mux.HandleFunc("POST /app/login", a.handleLoginPost)
	mux.HandleFunc("GET /app/register", a.handleRegisterGet)
	mux.HandleFunc("POST /app/register", a.handleRegisterPost)
	mux.HandleFunc("POST /app/logout", a.handleLogoutPost)
	mux.HandleFunc("GET /app/usernames/check", a.handleUsernameCheck)
	mux.HandleFunc("GET /app/profiles", a.requireAuth(a.handleProfilesGet))
	mux.HandleFunc("POST /app/profiles", a.requireAuth(a.handleProfilesPost))
	mux.HandleFunc("GET /app/profiles/new", a.requireAuth(a.handleProfileNewGet))
	mux.HandleFunc("GET /app/profiles/choose", a.requireAuth(a.handleChooseGet))
	mux.HandleFunc("POST /app/profiles/choose", a.requireAuth(a.handleChoosePost))
	mux.HandleFunc("GET /app/settings", a.requireAuth(a.handleSettingsGet))
	mux.HandleFunc("POST /app/settings", a.requireAuth(a.handleSettingsPost))

	mux.Handle("GET /app/static/", a.static)
	mux.Handle("HEAD /app/static/", a.static)

	return mux
}

type app struct {
	logger *slog.Logger

	authSvc    *service.AuthService
	profileSvc *service.ProfileService

	cookieCodec  auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration
	siteName     string

	forms     *formStates
	templates *templates
	static    http.Handler
}

func (a *app) redirectApp(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/app/", http.StatusFound)
}

type sessionCtxKey struct{}

func (a *app) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if a.authSvc == nil || a.profileSvc == nil {
			a.renderError(w, http.StatusServiceUnavailable, "Unavailable", uiUnavailableMsg)
			return
		}
		info, ok := a.currentSession(r)
		if !ok {
			http.Redirect(w, r, "/app/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), info)))
	}
}

func (a *app) currentSession(r *http.Request) (domain.SessionInfo, bool) {
	if a.authSvc == nil {
		return domain.SessionInfo{}, false
	}
	c, err := r.Cookie(auth.SessionCookieName)
	if err != nil || c.Value == "" {
		return domain.SessionInfo{}, false
	}
	sessID, ok := a.cookieCodec.Verify(c.Value)
	if !ok {
		return domain.SessionInfo{}, false
	}
	info, err := a.authSvc.SessionInfo(r.Context(), sessID)
	if err != nil {
		return domain.SessionInfo{}, false
	}
	return info, true
}
