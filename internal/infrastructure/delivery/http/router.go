// Package httprouter wires the HTTP surface to the service.
package httprouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"savestream/internal/consts"
	"savestream/internal/errs"
	"savestream/internal/infrastructure/delivery/http/middleware"
	"savestream/internal/infrastructure/delivery/http/request"
	"savestream/internal/infrastructure/delivery/http/response"
	"savestream/internal/observability"
	"savestream/internal/service"
)

// Router serves the download front-end API.
type Router struct {
	*http.ServeMux
	log         *slog.Logger
	globalChain []func(http.Handler) http.Handler
	svc         *service.Service
	metrics     *observability.Metrics
}

// New creates the router with global middlewares and all routes set.
func New(log *slog.Logger, svc *service.Service, metrics *observability.Metrics) *Router {
	r := &Router{
		ServeMux: http.NewServeMux(),
		log:      log.With(slog.String("package", "httprouter")),
		svc:      svc,
		metrics:  metrics,
	}

	r.SetGlobalMiddlewares()
	r.SetRoutes()

	return r
}

// Use appends global middlewares.
func (r *Router) Use(mw ...func(http.Handler) http.Handler) {
	r.globalChain = append(r.globalChain, mw...)
}

// ServeHTTP applies the global middleware chain around the mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var h http.Handler = r.ServeMux

	for _, mw := range slices.Backward(r.globalChain) {
		h = mw(h)
	}

	h.ServeHTTP(w, req)
}

// SetGlobalMiddlewares installs the default middleware chain.
func (r *Router) SetGlobalMiddlewares() {
	r.Use(
		middleware.Recoverer,
		middleware.RequestID,
		middleware.Logger,
		middleware.Metrics(r.metrics),
	)
}

// SetRoutes registers all routes.
func (r *Router) SetRoutes() {
	r.HandleFunc("POST /check_url", r.CheckURL)
	r.HandleFunc("POST /download", r.StartDownload)
	r.HandleFunc("GET /status", r.Status)
	r.HandleFunc("GET /get_video", r.GetVideo)

	r.HandleFunc("GET /readyz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Handle("GET /metrics", observability.Handler())
}

// CheckURL previews the metadata for a URL.
func (ro *Router) CheckURL(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "CheckURL")

	ctx, cancel := context.WithTimeout(r.Context(), consts.DefaultLookupTimeout)
	defer cancel()

	var in request.Check
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.ErrorContext(ctx, "decode body", slog.Any("error", err))
		response.JSON(w, http.StatusBadRequest, response.Check{Valid: false, Error: errs.ErrInvalidRequestBody.Error()})

		return
	}

	if err := in.Validate(); err != nil {
		log.ErrorContext(ctx, "validate", slog.Any("error", err))
		response.JSON(w, http.StatusBadRequest, response.Check{Valid: false, Error: consts.RespURLRequired})

		return
	}

	info, err := ro.svc.CheckURL(ctx, in.URL)
	if err != nil {
		log.ErrorContext(ctx, consts.RespInfoFetchFail, slog.Any("error", err))
		response.JSON(w, http.StatusBadRequest, response.Check{Valid: false, Error: consts.RespInfoFetchFail})

		return
	}

	response.OK(w, response.Check{Valid: true, Info: info})
}

// StartDownload schedules a download job.
func (ro *Router) StartDownload(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "StartDownload")
	ctx := r.Context()

	var in request.Download
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.ErrorContext(ctx, "decode body", slog.Any("error", err))
		response.BadRequest(w, consts.RespURLRequired)

		return
	}

	if err := in.Validate(); err != nil {
		log.ErrorContext(ctx, "validate", slog.Any("error", err))
		response.BadRequest(w, consts.RespURLRequired)

		return
	}

	err := ro.svc.StartDownload(ctx, in.URL)

	switch {
	case errors.Is(err, errs.ErrInvalidURL):
		response.BadRequest(w, consts.RespURLRequired)

		return
	case errors.Is(err, errs.ErrJobInFlight):
		log.DebugContext(ctx, consts.RespDownloadInFlight)
		response.Conflict(w, consts.RespDownloadInFlight)

		return
	case err != nil:
		log.ErrorContext(ctx, consts.RespDownloadStartFail, slog.Any("error", err))
		response.InternalServerError(w, consts.RespDownloadStartFail)

		return
	}

	log.InfoContext(ctx, consts.RespDownloadStarted, slog.String("url", in.URL))

	response.Accepted(w, consts.RespDownloadStarted)
}

// Status returns the pollable job snapshot.
func (ro *Router) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, ro.svc.Status(r.Context()))
}

// GetVideo streams the finished artifact as a downloadable attachment.
func (ro *Router) GetVideo(w http.ResponseWriter, r *http.Request) {
	log := ro.log.With("handler", "GetVideo")
	ctx := r.Context()

	data, filename, err := ro.svc.Artifact(ctx)
	if errors.Is(err, errs.ErrNotReady) {
		log.DebugContext(ctx, consts.RespVideoNotReady)
		response.NotFound(w, consts.RespVideoNotReady)

		return
	}
	if err != nil {
		log.ErrorContext(ctx, "artifact fetch", slog.Any("error", err))
		response.InternalServerError(w, consts.RespVideoNotReady)

		return
	}

	w.Header().Set("Content-Type", consts.MIMEVideoMP4)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))

	if _, err := w.Write(data); err != nil {
		log.ErrorContext(ctx, "write artifact", slog.Any("error", err))
	}
}
