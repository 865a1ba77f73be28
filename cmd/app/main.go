package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timetable-portal/internal/config"
	"timetable-portal/internal/gateway"
	"timetable-portal/internal/generation"
	adminGenerate "timetable-portal/internal/http-server/handlers/admin/generate"
	adminTeacherCreate "timetable-portal/internal/http-server/handlers/admin/teachers/create"
	adminTimetableGet "timetable-portal/internal/http-server/handlers/admin/timetable/get"
	authLogin "timetable-portal/internal/http-server/handlers/auth/login"
	authLogout "timetable-portal/internal/http-server/handlers/auth/logout"
	homeGet "timetable-portal/internal/http-server/handlers/home/get"
	prefCreate "timetable-portal/internal/http-server/handlers/teacher/preferences/create"
	prefDelete "timetable-portal/internal/http-server/handlers/teacher/preferences/delete"
	prefGet "timetable-portal/internal/http-server/handlers/teacher/preferences/get"
	prefUpdate "timetable-portal/internal/http-server/handlers/teacher/preferences/update"
	refdataCreate "timetable-portal/internal/http-server/handlers/refdata/create"
	refdataDelete "timetable-portal/internal/http-server/handlers/refdata/delete"
	refdataGet "timetable-portal/internal/http-server/handlers/refdata/get"
	refdataUpdate "timetable-portal/internal/http-server/handlers/refdata/update"
	"timetable-portal/internal/http-server/middleware/gate"
	"timetable-portal/internal/prefs"
	"timetable-portal/internal/refdata"
	"timetable-portal/internal/session"
	"timetable-portal/internal/timetable"
	slogpretty "timetable-portal/pkg/handlers/slogPretty"
	"timetable-portal/pkg/middleware/mwLogger"
	"timetable-portal/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting portal", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	store, err := session.NewRedisStore(cfg.RedisAddr, cfg.Session.TTL)
	if err != nil {
		log.Error("Failed to init credential store", sl.Err(err))
		os.Exit(1)
	}

	gw := gateway.New(cfg.Backend.BaseURL, cfg.Backend.Timeout)

	sessions := session.NewManager(gw, store)
	timetables := timetable.New(gw)
	refdataSvc := refdata.New(gw)
	workflows := prefs.NewFactory(gw)
	registry := generation.NewRegistry(gw)

	adminOnly := gate.New(log, sessions, cfg.Session.CookieName, session.RoleAdmin)
	teacherOnly := gate.New(log, sessions, cfg.Session.CookieName, session.RoleTeacher)
	anyRole := gate.New(log, sessions, cfg.Session.CookieName, session.RoleAdmin, session.RoleTeacher)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Public
	router.Get("/", homeGet.New(log, timetables))
	router.Get(gate.LoginPath, func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"login": "POST /auth/login"})
	})

	// Auth
	router.Post("/auth/login", authLogin.New(log, sessions, cfg.Session.CookieName, cfg.Session.TTL))
	router.Post("/auth/logout", authLogout.New(log, sessions, cfg.Session.CookieName))

	// Admin
	router.Route("/admin", func(r chi.Router) {
		r.Use(adminOnly)
		r.Get("/timetable", adminTimetableGet.New(log, timetables))
		r.Post("/generate", adminGenerate.New(log, registry))
		r.Post("/teachers", adminTeacherCreate.New(log, refdataSvc))
	})

	// Teacher preferences
	router.Route("/teacher/preferences", func(r chi.Router) {
		r.Use(teacherOnly)
		r.Get("/", prefGet.New(log, workflows))
		r.Post("/", prefCreate.New(log, workflows))
		r.Put("/{id}", prefUpdate.New(log, workflows))
		r.Delete("/{id}", prefDelete.New(log, workflows))
	})

	// Reference data: reads for any signed-in role, writes admin only
	router.Route("/{resource:subjects|rooms|time-slots}", func(r chi.Router) {
		r.With(anyRole).Get("/", refdataGet.New(log, refdataSvc))
		r.With(adminOnly).Post("/", refdataCreate.New(log, refdataSvc))
		r.With(adminOnly).Put("/{id}", refdataUpdate.New(log, refdataSvc))
		r.With(adminOnly).Delete("/{id}", refdataDelete.New(log, refdataSvc))
	})

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := store.Close(); err != nil {
		log.Error("Failed to close credential store", sl.Err(err))
	} else {
		log.Info("Credential store closed")
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slogpretty.NewDefault()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}
