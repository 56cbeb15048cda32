// Package handler は HTTP/JSON でスケジュールの生成と取得を提供します。
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ogurasousui/office-rota/internal/core/rota"
)

const (
	// GeneratePath はスケジュール生成のパスです。
	GeneratePath = "/generate-schedule"
	// SchedulePath は現在のスケジュール取得のパスです。
	SchedulePath = "/schedule"

	generatedMessage = "schedule generated successfully"
	maxBodyBytes     = 1 << 20
)

type generateRequest struct {
	Employees []string `json:"employees"`
	NumWeeks  *int     `json:"num_weeks"`
}

type weekResponse struct {
	Present []string `json:"present"`
	Remote  []string `json:"remote"`
}

type scheduleResponse struct {
	ID                 string         `json:"id"`
	GeneratedAt        time.Time      `json:"generated_at"`
	WorkingDaysPerWeek int            `json:"working_days_per_week"`
	Weeks              []weekResponse `json:"weeks"`
}

// ScheduleHandler はスケジュール API の HTTP ハンドラです。
type ScheduleHandler struct {
	svc    rota.UseCase
	logger *slog.Logger
}

// NewScheduleHandler は ScheduleHandler を生成します。
func NewScheduleHandler(svc rota.UseCase, logger *slog.Logger) *ScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleHandler{svc: svc, logger: logger}
}

// Routes はルーティング済みの http.Handler を返します。
func (h *ScheduleHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+GeneratePath, h.generate)
	mux.HandleFunc("GET "+SchedulePath, h.get)
	return mux
}

func (h *ScheduleHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.NumWeeks == nil {
		writeJSON(w, http.StatusBadRequest, "num_weeks is required")
		return
	}

	if _, err := h.svc.GenerateSchedule(r.Context(), rota.GenerateScheduleInput{
		Employees: req.Employees,
		NumWeeks:  *req.NumWeeks,
	}); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, generatedMessage)
}

func (h *ScheduleHandler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSchedule(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	weeks := make([]weekResponse, len(s.Weeks))
	for i, wk := range s.Weeks {
		weeks[i] = weekResponse{Present: nonNil(wk.Present), Remote: nonNil(wk.Remote)}
	}
	writeJSON(w, http.StatusOK, scheduleResponse{
		ID:                 s.ID,
		GeneratedAt:        s.GeneratedAt,
		WorkingDaysPerWeek: s.WorkingDaysPerWeek,
		Weeks:              weeks,
	})
}

func (h *ScheduleHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rota.ErrEmptyEmployees), errors.Is(err, rota.ErrInvalidWeekCount):
		writeJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, rota.ErrScheduleNotFound):
		writeJSON(w, http.StatusNotFound, err.Error())
	default:
		h.logger.ErrorContext(r.Context(), "schedule request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func nonNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
