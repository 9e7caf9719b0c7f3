package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"casevault/internal/config"
	"casevault/internal/http/handlers/audit"
	"casevault/internal/http/handlers/docs"
	"casevault/internal/http/handlers/session"
	"casevault/internal/http/handlers/user"
	"casevault/internal/http/middleware"
	"casevault/internal/models"
	utils "casevault/internal/utils/http_errors"

	"github.com/gorilla/mux"
)

func StartServer(
	ctx context.Context,
	cfg *config.HTTPServer,
	log *slog.Logger,
	documentService DocumentService,
	authService AuthService,
) error {
	r := mux.NewRouter()

	r.Use(middleware.Logger(log))

	setupRoutes(r, log, authService, documentService)

	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      r,
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func setupRoutes(r *mux.Router, log *slog.Logger, auth AuthService, doc DocumentService) {
	// POST user (admin-token gated)
	r.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// POST session (login)
	r.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// Verify is public: an expired token must yield a clean answer, not 401.
	r.HandleFunc("/api/auth/verify", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Verify(ctx, log, w, r, auth)
	}).Methods(http.MethodGet, http.MethodPost)

	protected := r.NewRoute().Subrouter()

	protected.Use(middleware.Auth(log, auth))

	// DELETE session (logout)
	protected.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Delete(ctx, log, w, r, auth)
	}).Methods(http.MethodDelete)

	// POST renew (rotate token)
	protected.HandleFunc("/api/auth/renew", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Renew(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// POST doc (multipart upload)
	protected.HandleFunc("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Upload(ctx, log, w, r, doc)
	}).Methods(http.MethodPost)

	// GET docs (filtered list)
	protected.HandleFunc("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		docs.Get(ctx, log, w, r, doc)
	}).Methods(http.MethodGet)

	// GET doc by id
	protected.HandleFunc("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.GetByID(ctx, log, w, r, vars["id"], doc)
	}).Methods(http.MethodGet)

	// GET doc content
	protected.HandleFunc("/api/documents/{id}/download", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Download(ctx, log, w, r, vars["id"], doc)
	}).Methods(http.MethodGet)

	// DELETE doc by id
	protected.HandleFunc("/api/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		docs.Delete(ctx, log, w, r, vars["id"], doc)
	}).Methods(http.MethodDelete)

	// GET audit trail (privileged, read-only)
	protected.HandleFunc("/api/audit", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		audit.Get(ctx, log, w, r, doc)
	}).Methods(http.MethodGet)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})
}
