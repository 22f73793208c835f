package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/me/taskplan/pkg/model"
)

// requestID generates a unique request identifier.
func requestID() string {
	return "req_" + uuid.New().String()[:8]
}

// respondOK writes a success response with the standard envelope.
func respondOK(w http.ResponseWriter, reqID string, data any) {
	respondJSON(w, http.StatusOK, reqID, data, nil, nil)
}

// respondList writes a success response with pagination.
func respondList(w http.ResponseWriter, reqID string, data any, pg *model.Pagination) {
	respondJSON(w, http.StatusOK, reqID, data, pg, nil)
}

// respondError writes an error response with the standard envelope.
func respondError(w http.ResponseWriter, reqID string, status int, apiErr *model.APIError) {
	respondJSON(w, status, reqID, nil, nil, apiErr)
}

// respondErr maps err to an HTTP status and error envelope. Scheduling
// failures keep their code; anything unrecognised is an internal error.
func respondErr(w http.ResponseWriter, reqID string, err error) {
	status, apiErr := classify(err)
	respondError(w, reqID, status, apiErr)
}

func classify(err error) (int, *model.APIError) {
	var pe *model.ParseError
	if errors.As(err, &pe) {
		return http.StatusBadRequest, &model.APIError{
			Code:    model.ErrParse,
			Message: err.Error(),
			Details: []model.FieldError{{Field: pe.Field, Message: "invalid value " + pe.Value}},
		}
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case model.ErrValidation, model.ErrInvalidArgument, model.ErrParse:
			return http.StatusBadRequest, apiErr
		case model.ErrNotFound:
			return http.StatusNotFound, apiErr
		}
		return http.StatusInternalServerError, apiErr
	}
	return http.StatusInternalServerError, &model.APIError{Code: model.ErrInternal, Message: err.Error()}
}

func respondJSON(w http.ResponseWriter, status int, reqID string, data any, pg *model.Pagination, apiErr *model.APIError) {
	resp := model.Response{
		RequestID:  reqID,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: pg,
		Error:      apiErr,
	}
	if apiErr != nil {
		resp.Status = "error"
	} else {
		resp.Status = "ok"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// decodeBody reads a JSON request body of at most maxBodyBytes into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) *model.APIError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return &model.APIError{
			Code:    model.ErrValidation,
			Message: "Invalid JSON body: " + err.Error(),
		}
	}
	return nil
}
