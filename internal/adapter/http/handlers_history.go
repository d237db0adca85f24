package adapthttp

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/vmihailenco/msgpack/v5"
)

func (s *Server) handleHistoryRows(w http.ResponseWriter, r *http.Request) {
	rows, err := s.history.Rows(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	insights, err := s.history.Insights(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (s *Server) handleHistoryTrend(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 7)
	points, err := s.history.Trend(r.Context(), userFrom(r.Context()).ID, days, r.URL.Query().Get("unit"))
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": len(points), "points": points})
}

func (s *Server) handleHistoryExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "msgpack" {
		writeError(w, http.StatusBadRequest, errors.New("format must be json or msgpack"))
		return
	}

	export, err := s.history.Export(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}

	filename := fmt.Sprintf("water_history.%s", format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if format == "json" {
		writeJSON(w, http.StatusOK, export)
		return
	}

	body, err := msgpack.Marshal(export)
	if err != nil {
		writeServiceError(w, s.log, fmt.Errorf("encode export: %w", err))
		return
	}
	w.Header().Set("Content-Type", "application/msgpack")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
