package http

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"portfolio/frontend/background"
	loginflow "portfolio/frontend/login"
	"portfolio/frontend/portfolio"
	sessioncontext "portfolio/frontend/shared/context"
	"portfolio/infrastructure/argon"
	"portfolio/infrastructure/audit"
	"portfolio/infrastructure/backend"
	"portfolio/infrastructure/cache"
	"portfolio/infrastructure/flash"
	sessioncookie "portfolio/infrastructure/session"
	"portfolio/infrastructure/sqlite"
	"portfolio/models"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Settings are the site-wide values handlers render with.
type Settings struct {
	Profile        portfolio.Profile
	SiteURL        string
	PageSize       int
	AdminPageSize  int
	ResumeFileName string
	SecureCookie   bool
}

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	DB           *sqlite.DB
	SessionCache *cache.SessionCache
	Sealer       *argon.Sealer
	Backend      *backend.Client
	Audit        *audit.Service
	Flash        *flash.Store
	Settings     Settings

	// Seed picks the background scene; nil means random.
	Seed background.SeedFunc
}

// NewServer creates a new http server.
func NewServer(addr string, db *sqlite.DB, sessionCache *cache.SessionCache, sealer *argon.Sealer, client *backend.Client, auditSvc *audit.Service, flashes *flash.Store, settings Settings) *Server {
	s := &Server{
		Addr:         addr,
		router:       chi.NewRouter(),
		DB:           db,
		SessionCache: sessionCache,
		Sealer:       sealer,
		Backend:      client,
		Audit:        auditSvc,
		Flash:        flashes,
		Settings:     settings,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.RegisterPublicRoutes(s.router)

	s.router.Route("/admin", func(r chi.Router) {
		s.RegisterLoginRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthenticateMiddleware)
			s.RegisterAdminRoutes(r)
		})
	})

	s.server.Handler = s.router
	return s
}

func (s *Server) loginDeps() loginflow.Deps {
	return loginflow.Deps{
		DB:           s.DB,
		SessionCache: s.SessionCache,
		Sealer:       s.Sealer,
		Auth:         s.Backend,
		Audit:        s.Audit,
		Flash:        s.Flash,
		SecureCookie: s.Settings.SecureCookie,
	}
}

// AuthenticateMiddleware loads the admin session and hands its bearer
// token to the backend client through the request context.
func (s *Server) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionCookie, err := r.Cookie(sessioncookie.CookieName)
		if err != nil || sessionCookie.Value == "" {
			http.Redirect(w, r, loginflow.LoginPath, http.StatusSeeOther)
			return
		}

		sessionID := sessionCookie.Value
		session, ok := s.resolveSession(r.Context(), sessionID)
		if !ok {
			slog.Warn("session not found", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			http.SetCookie(w, sessioncookie.SessionCookie("", -1, s.Settings.SecureCookie))
			http.Redirect(w, r, loginflow.LoginPath, http.StatusSeeOther)
			return
		}

		if session.Expired() {
			loginflow.EndSession(w, r, s.loginDeps(), sessionID)
			http.Redirect(w, r, loginflow.LoginPath+"?error=Session+expired.+Please+log+in+again.", http.StatusSeeOther)
			return
		}

		ctx := sessioncontext.NewContextWithSession(r.Context(), session)
		ctx = sessioncontext.WithSessionEnd(ctx, func(w http.ResponseWriter, r *http.Request) {
			loginflow.EndSession(w, r, s.loginDeps(), sessionID)
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// redirectSignedIn skips the login screen for a live session.
func (s *Server) redirectSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(sessioncookie.CookieName); err == nil && c.Value != "" {
			if session, ok := s.resolveSession(r.Context(), c.Value); ok && !session.Expired() {
				http.Redirect(w, r, loginflow.DashboardPath, http.StatusSeeOther)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) resolveSession(ctx context.Context, id string) (session models.Session, ok bool) {
	if cached, found := s.SessionCache.Find(id); found {
		return cached, true
	}

	dbSession, err := loginflow.LoadSessionByToken(ctx, s.DB, s.Sealer, id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("load session from db failed", slog.Any("err", err))
		}
		return session, false
	}

	s.SessionCache.Add(dbSession)
	return dbSession, true
}

// PurgeExpiredSessions drops dead sessions from the cache and the database.
func (s *Server) PurgeExpiredSessions(ctx context.Context, now time.Time) {
	evicted := s.SessionCache.PurgeExpired(now)
	deleted, err := loginflow.PurgeExpiredSessions(ctx, s.DB, now)
	if err != nil {
		slog.Error("purge expired sessions failed", slog.Any("err", err))
		return
	}
	if evicted > 0 || deleted > 0 {
		slog.Info("purged expired sessions", slog.Int("cached", evicted), slog.Int64("stored", deleted))
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
