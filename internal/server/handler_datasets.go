package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/me/taskplan/pkg/model"
)

type runDetail struct {
	*model.DatasetRun
	LabelCounts map[int]int `json:"label_counts"`
}

// listOptions reads limit and offset query parameters over the defaults.
func listOptions(r *http.Request) model.ListOptions {
	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}
	opts.Clamp()
	return opts
}

func pagination(total int, opts model.ListOptions, n int) *model.Pagination {
	return &model.Pagination{
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+n < total,
	}
}

// requireStore responds 404 when no store is configured.
func (s *Server) requireStore(w http.ResponseWriter, reqID string) bool {
	if s.store == nil {
		respondError(w, reqID, http.StatusNotFound, &model.APIError{
			Code:    model.ErrNotFound,
			Message: "no dataset store configured",
		})
		return false
	}
	return true
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	if !s.requireStore(w, reqID) {
		return
	}
	opts := listOptions(r)
	runs, total, err := s.store.ListRuns(r.Context(), opts)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		respondErr(w, reqID, err)
		return
	}
	if runs == nil {
		runs = []*model.DatasetRun{}
	}
	respondList(w, reqID, runs, pagination(total, opts, len(runs)))
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	if !s.requireStore(w, reqID) {
		return
	}
	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.logger.Error("get run", "id", id, "error", err)
		respondErr(w, reqID, err)
		return
	}
	if run == nil {
		respondErr(w, reqID, model.NewNotFoundError("dataset run", id))
		return
	}
	counts, err := s.store.LabelCounts(r.Context(), id)
	if err != nil {
		s.logger.Error("label counts", "id", id, "error", err)
		respondErr(w, reqID, err)
		return
	}
	respondOK(w, reqID, runDetail{DatasetRun: run, LabelCounts: counts})
}

func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	if !s.requireStore(w, reqID) {
		return
	}
	id := chi.URLParam(r, "id")
	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		respondErr(w, reqID, err)
		return
	}
	if run == nil {
		respondErr(w, reqID, model.NewNotFoundError("dataset run", id))
		return
	}
	opts := listOptions(r)
	samples, total, err := s.store.ListSamples(r.Context(), id, opts)
	if err != nil {
		s.logger.Error("list samples", "id", id, "error", err)
		respondErr(w, reqID, err)
		return
	}
	respondList(w, reqID, samples, pagination(total, opts, len(samples)))
}
