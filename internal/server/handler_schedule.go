package server

import (
	"net/http"

	"github.com/me/taskplan/internal/features"
	"github.com/me/taskplan/internal/scheduler"
	"github.com/me/taskplan/pkg/model"
)

type algorithmInfo struct {
	Name         model.Algorithm `json:"name"`
	Label        int             `json:"label"`
	Preemptive   bool            `json:"preemptive"`
	NeedsQuantum bool            `json:"needs_quantum"`
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	algs := model.Algorithms()
	data := make([]algorithmInfo, 0, len(algs))
	for _, a := range algs {
		data = append(data, algorithmInfo{
			Name:         a,
			Label:        a.Index(),
			Preemptive:   a.Preemptive(),
			NeedsQuantum: a.NeedsQuantum(),
		})
	}
	respondOK(w, reqID, data)
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.ScheduleRequest
	if apiErr := decodeBody(w, r, &req); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	if ids := unknownImportance(req.Tasks); len(ids) > 0 {
		s.logger.Warn("unknown importance ranked as medium", "request_id", reqID, "task_ids", ids)
	}

	entries, err := scheduler.Schedule(req.Tasks, req.Algorithm, req.TimeQuantum)
	if err != nil {
		s.logger.Debug("schedule rejected", "algo", req.Algorithm, "tasks", len(req.Tasks), "error", err)
		respondErr(w, reqID, err)
		return
	}

	s.logger.Debug("schedule built", "algo", req.Algorithm, "tasks", len(req.Tasks), "entries", len(entries))
	respondOK(w, reqID, entries)
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.FeaturesRequest
	if apiErr := decodeBody(w, r, &req); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	f, err := features.Extract(req.Tasks)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}
	respondOK(w, reqID, f)
}

// unknownImportance lists the ids of tasks whose importance is not one of the
// defined levels.
func unknownImportance(tasks []model.Task) []int {
	var ids []int
	for _, t := range tasks {
		if !t.Importance.Valid() {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
