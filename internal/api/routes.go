package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/volleyclip/clipper/internal/errors"
)

// NewRouter wires all HTTP routes
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/", healthHandler(cfg))
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/webhook/index", indexWebhookHandler(cfg))
	r.Post("/webhook/process-job", processJobWebhookHandler(cfg))
	r.Get("/jobs/{id}/clips", jobClipsHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", UptimeS: uptime})
	}
}

func indexWebhookHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req IndexWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.VideoFilename == "" || req.VideoDBID == "" {
			WriteError(w, http.StatusBadRequest, "video_filename and video_db_id are required", "BAD_REQUEST")
			return
		}

		if err := cfg.Dispatcher.DispatchIndex(r.Context(), req.VideoFilename, req.VideoDBID); err != nil {
			writeAppError(w, err)
			return
		}

		WriteJSON(w, http.StatusAccepted, QueuedResponse{Status: "queued"})
	}
}

func processJobWebhookHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ProcessJobWebhookRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.JobID == "" {
			WriteError(w, http.StatusBadRequest, "job_id is required", "BAD_REQUEST")
			return
		}

		if err := cfg.Dispatcher.DispatchJob(r.Context(), req.JobID); err != nil {
			writeAppError(w, err)
			return
		}

		WriteJSON(w, http.StatusAccepted, QueuedResponse{Status: "queued"})
	}
}

func jobClipsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "job id required", "BAD_REQUEST")
			return
		}

		job, err := cfg.Jobs.GetByID(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}

		clips, err := cfg.Clips.ListByJobID(r.Context(), id)
		if err != nil {
			writeAppError(w, err)
			return
		}

		resp := JobClipsResponse{
			JobID:  job.ID,
			Status: string(job.Status),
			Clips:  make([]ClipResponse, len(clips)),
		}
		for i, c := range clips {
			resp.Clips[i] = ClipToResponse(c)
		}
		WriteJSON(w, http.StatusOK, resp)
	}
}

// writeAppError maps application error codes onto HTTP statuses
func writeAppError(w http.ResponseWriter, err error) {
	code := apperrors.Code(err)
	status := http.StatusInternalServerError
	switch code {
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeInvalidArg:
		status = http.StatusBadRequest
	case apperrors.CodePrecondition, apperrors.CodeConflict:
		status = http.StatusConflict
	case apperrors.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}
	WriteError(w, status, err.Error(), code)
}
