package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"questserver/internal/auth"
	"questserver/internal/service"
)

type RouterOpts struct {
	Logger *slog.Logger
	IsProd bool

	DBPing func(context.Context) error

	Auth         *service.AuthService
	Profiles     *service.ProfileService
	CookieCodec  auth.CookieCodec
	CookieSecure bool
	SessionTTL   time.Duration

	// App serves everything outside /v1 and /healthz, typically the HTML UI.
	App http.Handler
}

func NewRouter(opts RouterOpts) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := &api{
		logger:       logger,
		isProd:       opts.IsProd,
		dbPing:       opts.DBPing,
		authSvc:      opts.Auth,
		profileSvc:   opts.Profiles,
		cookieCodec:  opts.CookieCodec,
		cookieSecure: opts.CookieSecure,
		sessionTTL:   opts.SessionTTL,
		loginLimiter: newLoginLimiter(),
	}

	publicMux := http.NewServeMux()
	apiMux := http.NewServeMux()

	publicMux.HandleFunc("GET /healthz", api.handleHealthz)
	if opts.App != nil {
		publicMux.Handle("/", opts.App)
	}

	apiMux.HandleFunc("POST /v1/usernames/slugify", api.handleUsernamesSlugify)

	if api.authSvc == nil {
		apiMux.HandleFunc("POST /v1/auth/register", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/login", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/google", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/apple", handleNotImplemented)
		apiMux.HandleFunc("POST /v1/auth/logout", handleNotImplemented)
		apiMux.HandleFunc("GET /v1/me", handleNotImplemented)
	} else {
		apiMux.HandleFunc("POST /v1/auth/register", api.handleAuthRegister)
		apiMux.HandleFunc("POST /v1/auth/login", api.handleAuthLogin)
		apiMux.HandleFunc("POST /v1/auth/google", api.handleAuthLoginGoogle)
		apiMux.HandleFunc("POST /v1/auth/apple", api.handleAuthLoginApple)
		apiMux.HandleFunc("POST /v1/auth/logout", api.requireAuth(api.handleAuthLogout))
		apiMux.HandleFunc("GET /v1/me", api.requireAuth(api.handleMe))

		if api.profileSvc != nil {
			apiMux.HandleFunc("GET /v1/profiles", api.requireAuth(api.handleProfilesList))
			apiMux.HandleFunc("POST /v1/profiles", api.requireAuth(api.handleProfilesCreate))
			apiMux.HandleFunc("POST /v1/profiles/choose", api.requireAuth(api.handleProfilesChoose))
			apiMux.HandleFunc("GET /v1/settings", api.requireAuth(api.handleSettingsGet))
			apiMux.HandleFunc("PUT /v1/settings", api.requireAuth(api.handleSettingsUpdate))
		}
	}

	if api.profileSvc != nil {
		apiMux.HandleFunc("GET /v1/usernames/{username}/availability", api.handleUsernamesAvailability)
	}

	apiHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := apiMux.Handler(r)
		if pattern == "" {
			handleV1NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})

	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/v1/") || r.URL.Path == "/v1" {
			apiHandler.ServeHTTP(w, r)
			return
		}
		publicMux.ServeHTTP(w, r)
	})

	var h http.Handler = root
	h = RequestLogger(logger)(h)
	h = RequestID()(h)
	h = Recoverer(logger, opts.IsProd)(h)
	return h
}

func handleNotImplemented(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotImplemented, "not_implemented", "not implemented")
}

func handleV1NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "not_found", "not found")
}

type api struct {
	logger *slog.Logger
	isProd bool

	dbPing func(context.Context) error

	authSvc      *service.AuthService
	profileSvc   *service.ProfileService
	cookieCodec  auth.CookieCodec
	cookieSecure bool
	sessionTTL   time.Duration

	loginLimiter *loginLimiter
}

func (a *api) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if a.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
		defer cancel()
		if err := a.dbPing(ctx); err != nil {
			a.logger.Warn("healthz: db ping failed", "err", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db down"))
			return
		}
	}

	_, _ = w.Write([]byte("ok"))
}
