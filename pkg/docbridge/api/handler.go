// Package api exposes the bridge over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/docbridge/docbridge/pkg/docbridge"
	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "docbridge"

// Handler holds the HTTP surface of the bridge.
type Handler struct {
	builder       *docbridge.Builder
	callbacks     *docbridge.CallbackHandler
	store         storage.Gateway
	presignExpiry time.Duration
	logger        *slog.Logger
}

// NewHandler creates the HTTP handler. presignExpiry is the default expiry
// for the presigned-URL test endpoint.
func NewHandler(builder *docbridge.Builder, callbacks *docbridge.CallbackHandler, store storage.Gateway, presignExpiry time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		builder:       builder,
		callbacks:     callbacks,
		store:         store,
		presignExpiry: presignExpiry,
		logger:        logger.With(slog.String("component", "api")),
	}
}

// Routes returns the router for the bridge endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/config", h.BuildConfig)
	r.Post("/callback", h.Callback)
	r.Get("/test/presigned-url", h.PresignedURL)
	r.Post("/test/presigned-url", h.PresignedURL)
	r.Delete("/files/*", h.DeleteFile)
	r.Get("/health", h.Health)

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

// BuildConfig handles POST /config.
func (h *Handler) BuildConfig(w http.ResponseWriter, r *http.Request) {
	var req docbridge.BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.builder.Build(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, docbridge.ErrMissingFileID):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, errorResponse{Error: err.Error()})
		case errors.Is(err, docbridge.ErrDocumentNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: err.Error()})
		case errors.Is(err, storage.ErrStoreUnavailable):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "object store unavailable"})
		default:
			h.logger.Error("config build failed", slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "internal error"})
		}
		return
	}

	render.JSON(w, r, result)
}

// callbackBody is the editor's callback payload. Fields we do not act on are
// decoded for logging only.
type callbackBody struct {
	Status int      `json:"status"`
	Key    string   `json:"key"`
	URL    string   `json:"url"`
	Users  []string `json:"users"`
}

// ackResponse is the acknowledgment the editor expects on every callback.
type ackResponse struct {
	Error int `json:"error"`
}

// Callback handles POST /callback. Once the event is dispatched the response
// is always {"error":0}: the editor retries on its own schedule and a failed
// save must not look like a failed callback.
func (h *Handler) Callback(w http.ResponseWriter, r *http.Request) {
	var body callbackBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Error("malformed callback body", slog.String("error", err.Error()))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errorResponse{Error: "malformed callback"})
		return
	}

	q := r.URL.Query()

	fileID := q.Get("fileId")
	if fileID == "" {
		// Older editors round-trip only the document URL; fall back to its name.
		fileID = path.Base(q.Get("fileUrl"))
	}

	downloadURL := q.Get("downUrl")
	if downloadURL == "" {
		downloadURL = body.URL
	}

	ev := docbridge.CallbackEvent{
		Status:      docbridge.Status(body.Status),
		FileID:      fileID,
		DownloadURL: downloadURL,
		SessionKey:  body.Key,
		Users:       body.Users,
	}

	h.callbacks.Handle(r.Context(), ev)

	render.JSON(w, r, ackResponse{Error: 0})
}

type presignedResponse struct {
	File         string  `json:"file"`
	PresignedURL string  `json:"presignedUrl"`
	Expiry       int     `json:"expiry"`
	ExpiryHours  float64 `json:"expiryHours"`
}

// PresignedURL handles GET|POST /test/presigned-url, an operator helper for
// checking store connectivity and signing.
func (h *Handler) PresignedURL(w http.ResponseWriter, r *http.Request) {
	file := r.FormValue("file")
	if file == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "file parameter is required"})
		return
	}

	expiry := h.presignExpiry
	if v := r.FormValue("expiry"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			expiry = time.Duration(secs) * time.Second
		}
	}

	u, err := h.store.PresignedURL(r.Context(), file, expiry)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrStoreUnavailable):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "object store unavailable"})
		case errors.Is(err, storage.ErrObjectNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: "file not found"})
		default:
			h.logger.Error("presign failed", slog.String("file", file), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "internal error"})
		}
		return
	}

	secs := int(expiry / time.Second)
	render.JSON(w, r, presignedResponse{
		File:         file,
		PresignedURL: u,
		Expiry:       secs,
		ExpiryHours:  float64(secs) / 3600,
	})
}

// DeleteFile handles DELETE /files/{key}.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if key == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, errorResponse{Error: "file key is required"})
		return
	}

	if err := h.store.Delete(r.Context(), key); err != nil {
		switch {
		case errors.Is(err, storage.ErrStoreUnavailable):
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "object store unavailable"})
		case errors.Is(err, storage.ErrObjectNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, errorResponse{Error: "file not found"})
		default:
			h.logger.Error("delete failed", slog.String("key", key), slog.String("error", err.Error()))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{Error: "internal error"})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
	Store     string `json:"store"`
}

// Health handles GET /health. The store field doubles as the readiness
// signal for a degraded object store.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	store := "enabled"
	if !h.store.Enabled() {
		store = "disabled"
	}
	render.JSON(w, r, healthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   ServiceName,
		Store:     store,
	})
}
