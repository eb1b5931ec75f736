package server

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/iwvelando/herd-cost/internal/formulas"
	"github.com/iwvelando/herd-cost/internal/metrics"
	"github.com/iwvelando/herd-cost/internal/selection"
	"github.com/iwvelando/herd-cost/internal/session"
	"github.com/iwvelando/herd-cost/pkg/constants"
	"github.com/iwvelando/herd-cost/pkg/validation"
	"go.uber.org/zap"
)

// RequestIDHeader carries the per-request identifier on every response.
const RequestIDHeader = "X-Request-ID"

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	session     *session.Session
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the dashboard page and API.
func NewHandler(logger *zap.Logger, sess *session.Session, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, session: sess, maxBodySize: maxBodySize, version: trimmedVersion}

	r := mux.NewRouter()
	r.Use(h.requestID)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", h.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/inputs", h.handleInput).Methods(http.MethodPost)
	api.HandleFunc("/months/toggle", h.handleToggle).Methods(http.MethodPost)
	api.HandleFunc("/export/csv", h.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/formulas", h.handleFormulas).Methods(http.MethodGet)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	r.PathPrefix("/").Handler(http.FileServer(http.FS(sub))).Methods(http.MethodGet, http.MethodHead)

	return r
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("request served",
			zap.String("op", "server.requestID"),
			zap.String("requestId", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type inputRequest struct {
	Field string   `json:"field"`
	Value *float64 `json:"value"`
}

type toggleRequest struct {
	Month string `json:"month"`
}

type rejectionResponse struct {
	Error string  `json:"error"`
	Field string  `json:"field,omitempty"`
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type formulasResponse struct {
	Entries  []formulas.Entry `json:"entries"`
	Markdown string           `json:"markdown"`
	HTML     string           `json:"html"`
}

func (h *handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.session.View()
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleDashboard")
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *handler) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if !h.decodeBody(w, r, &req, "server.handleInput") {
		return
	}
	if req.Field == "" || req.Value == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "field and value are required", "server.handleInput")
		return
	}

	view, err := h.session.Propose(session.SetInput{Field: req.Field, Value: *req.Value})
	if err != nil {
		var rangeErr *validation.OutOfRangeError
		if errors.As(err, &rangeErr) {
			h.logger.Info("input rejected",
				zap.String("op", "server.handleInput"),
				zap.String("field", req.Field),
				zap.Float64("value", *req.Value),
			)
			h.writeJSON(w, http.StatusUnprocessableEntity, rejectionResponse{
				Error: rangeErr.Error(),
				Field: req.Field,
				Label: rangeErr.Label,
				Value: rangeErr.Value,
				Min:   rangeErr.Min,
				Max:   rangeErr.Max,
			})
			return
		}
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleInput")
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !h.decodeBody(w, r, &req, "server.handleToggle") {
		return
	}

	view, err := h.session.Propose(session.ToggleMonth{Month: req.Month})
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleToggle")
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	exp, err := h.session.Export()
	if err != nil {
		h.respondErrorWithOp(w, statusFor(err), err.Error(), "server.handleExport")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exp.FileName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(exp.Content); err != nil {
		h.logger.Error("failed to write export", zap.String("op", "server.handleExport"), zap.Error(err))
	}
}

func (h *handler) handleFormulas(w http.ResponseWriter, r *http.Request) {
	html, err := formulas.HTML()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render formulas: %v", err), "server.handleFormulas")
		return
	}
	h.writeJSON(w, http.StatusOK, formulasResponse{
		Entries:  formulas.Table,
		Markdown: formulas.Markdown(),
		HTML:     html,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, selection.ErrUnknownMonth), errors.Is(err, validation.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, metrics.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("dashboard request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	} else {
		h.logger.Info("dashboard request rejected",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
