package api

import (
	"bytes"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"hattucci/domain"
	"hattucci/internal/reports"
)

type reportRequest struct {
	Day string `json:"fecha"`
}

func (h *Handler) reportDay(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req reportRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err, "")
		return "", false
	}
	day, err := domain.ParseDay("fecha", req.Day)
	if err != nil {
		h.fail(w, r, err, "")
		return "", false
	}
	return day, true
}

func (h *Handler) dailyReport(w http.ResponseWriter, r *http.Request) {
	day, ok := h.reportDay(w, r)
	if !ok {
		return
	}
	report, err := h.reports.Daily(r.Context(), day)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (h *Handler) dailyMovements(w http.ResponseWriter, r *http.Request) {
	day, ok := h.reportDay(w, r)
	if !ok {
		return
	}
	movements, err := h.reports.Movements(r.Context(), day)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	respondJSON(w, http.StatusOK, movements)
}

// exportMovements serves the day's movements as a spreadsheet download.
func (h *Handler) exportMovements(w http.ResponseWriter, r *http.Request) {
	day, err := domain.ParseDay("fecha", r.URL.Query().Get("fecha"))
	if err != nil {
		h.fail(w, r, err, "")
		return
	}
	movements, err := h.reports.Movements(r.Context(), day)
	if err != nil {
		h.fail(w, r, err, "")
		return
	}

	var buf bytes.Buffer
	if err := reports.WriteMovementsXLSX(&buf, movements); err != nil {
		h.fail(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="movimientos-%s.xlsx"`, day))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("write export", zap.String("day", day), zap.Error(err))
	}
}
