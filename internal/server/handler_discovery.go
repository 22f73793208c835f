package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	endpoints := []endpointInfo{
		{"/api/v1/schedule", []string{"POST"}, "Build a day-split timetable for a task list with one algorithm"},
		{"/api/v1/features", []string{"POST"}, "Classifier feature vector for a task list"},
		{"/api/v1/algorithms", []string{"GET"}, "Supported scheduling algorithms"},
		{"/api/v1/health", []string{"GET"}, "Server health and version"},
	}
	if s.store != nil {
		endpoints = append(endpoints,
			endpointInfo{"/api/v1/datasets", []string{"GET"}, "Recorded dataset runs"},
			endpointInfo{"/api/v1/datasets/{id}", []string{"GET"}, "One dataset run with its label distribution"},
			endpointInfo{"/api/v1/datasets/{id}/samples", []string{"GET"}, "Samples of a dataset run (paginated)"},
		)
	}
	respondOK(w, reqID, discoveryResponse{
		Name:        "taskplan API",
		Version:     "v1",
		Description: "Personal task scheduling: FCFS, SJF, SRTF, round-robin, priority and EDF timetables",
		Endpoints:   endpoints,
	})
}
