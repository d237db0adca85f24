package adapthttp

import (
	"net/http"

	"waterbuddy/internal/domain"
)

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	view, err := s.hydration.Today(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleWaterAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AmountML int `json:"amountMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := s.hydration.AddWater(r.Context(), userFrom(r.Context()).ID, body.AmountML)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleWaterReset(w http.ResponseWriter, r *http.Request) {
	view, err := s.hydration.ResetDay(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.hydration.Profile(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile":   p,
		"xp":        domain.ProgressForXP(p.XP),
		"ageGroups": domain.AgeGroups(),
	})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GoalML int `json:"goalMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.hydration.SetGoal(r.Context(), userFrom(r.Context()).ID, body.GoalML)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSetAgeGroup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AgeGroup string `json:"ageGroup"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	view, err := s.hydration.SetAgeGroup(r.Context(), userFrom(r.Context()).ID, domain.AgeGroup(body.AgeGroup))
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DarkMode bool `json:"darkMode"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := s.hydration.SetPreferences(r.Context(), userFrom(r.Context()).ID, body.DarkMode)
	if err != nil {
		writeServiceError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleRandomTip(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tip": domain.RandomTip()})
}
