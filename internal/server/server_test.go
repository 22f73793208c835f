package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/me/taskplan/internal/config"
	"github.com/me/taskplan/internal/store"
	"github.com/me/taskplan/pkg/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testServer(opts ...Option) *Server {
	return New(config.DefaultServerConfig(), testLogger(), opts...)
}

// testStoreServer returns a server backed by an in-memory store holding one
// run with five samples.
func testStoreServer(t *testing.T) (*Server, string) {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:", testLogger())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	ctx := context.Background()
	if err := st.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	run := &model.DatasetRun{Kind: model.DatasetAlgorithm, Seed: 9, Batches: 5, Quanta: []int{1, 2, 4, 6}}
	if err := st.CreateRun(ctx, run); err != nil {
		t.Fatalf("create run: %v", err)
	}
	samples := make([]model.Sample, 5)
	for i := range samples {
		samples[i] = model.Sample{Batch: i, Features: map[string]float64{"num_tasks": 4}, Label: i % 3, Score: 0.6}
	}
	if err := st.InsertSamples(ctx, run.ID, samples); err != nil {
		t.Fatalf("insert samples: %v", err)
	}
	return testServer(WithStore(st)), run.ID
}

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Timestamp  string            `json:"timestamp"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

func do(t *testing.T, srv *Server, method, path, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v (body %s)", method, path, err, w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got != env.RequestID {
		t.Errorf("X-Request-ID = %q, envelope request_id = %q", got, env.RequestID)
	}
	return w.Code, env
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	code, env := do(t, srv, "GET", path, "")
	if code != http.StatusOK {
		t.Fatalf("GET %s: status=%d, want 200, error=%+v", path, code, env.Error)
	}
	return env
}

const twoTasks = `[
  {"id": 1, "taskName": "A", "duration": 2,
   "arrivalTime": {"hrs": 9, "date": "2025-09-27"},
   "deadlineTime": {"hrs": 18, "date": "2025-09-27"}, "importance": "Low"},
  {"id": 2, "taskName": "B", "duration": 1,
   "arrivalTime": {"hrs": 10, "date": "2025-09-27"},
   "deadlineTime": {"hrs": 12, "date": "2025-09-27"}, "importance": "High"}
]`

func TestDiscovery(t *testing.T) {
	env := doGet(t, testServer(), "/api/v1/")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if !strings.HasPrefix(env.RequestID, "req_") || len(env.RequestID) != 12 {
		t.Errorf("request_id = %q, want req_ + 8 chars", env.RequestID)
	}

	var data struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Name != "taskplan API" {
		t.Errorf("name = %q, want taskplan API", data.Name)
	}
	if len(data.Endpoints) != 4 {
		t.Errorf("endpoints count = %d, want 4 without a store", len(data.Endpoints))
	}

	srv, _ := testStoreServer(t)
	json.Unmarshal(doGet(t, srv, "/api/v1/").Data, &data)
	if len(data.Endpoints) != 7 {
		t.Errorf("endpoints count = %d, want 7 with a store", len(data.Endpoints))
	}
}

func TestHealth(t *testing.T) {
	env := doGet(t, testServer(), "/api/v1/health")

	var data healthResponse
	json.Unmarshal(env.Data, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != Version {
		t.Errorf("version = %q, want %q", data.Version, Version)
	}
	if data.Store != "disabled" {
		t.Errorf("store = %q, want disabled", data.Store)
	}
}

func TestAlgorithms(t *testing.T) {
	env := doGet(t, testServer(), "/api/v1/algorithms")
	var data []algorithmInfo
	json.Unmarshal(env.Data, &data)
	if len(data) != 6 {
		t.Fatalf("algorithms = %d, want 6", len(data))
	}
	for i, a := range data {
		if a.Label != i {
			t.Errorf("%s label = %d, want %d", a.Name, a.Label, i)
		}
		if a.NeedsQuantum != (a.Name == model.AlgorithmRR) {
			t.Errorf("%s needs_quantum = %v", a.Name, a.NeedsQuantum)
		}
	}
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		algo string
		want []model.ScheduleEntry
	}{
		{"fcfs", []model.ScheduleEntry{
			{Task: "A", Start: 9, End: 11, Date: "2025-09-27"},
			{Task: "B", Start: 11, End: 12, Date: "2025-09-27"},
		}},
		{"SRTF", []model.ScheduleEntry{
			{Task: "A", Start: 9, End: 11, Date: "2025-09-27"},
			{Task: "B", Start: 11, End: 12, Date: "2025-09-27"},
		}},
		{"edf", []model.ScheduleEntry{
			{Task: "A", Start: 9, End: 11, Date: "2025-09-27"},
			{Task: "B", Start: 11, End: 12, Date: "2025-09-27"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.algo, func(t *testing.T) {
			body := `{"task_list": ` + twoTasks + `, "algo": "` + tt.algo + `"}`
			code, env := do(t, testServer(), "POST", "/api/v1/schedule", body)
			if code != http.StatusOK {
				t.Fatalf("status = %d, want 200, error = %+v", code, env.Error)
			}
			var got []model.ScheduleEntry
			if err := json.Unmarshal(env.Data, &got); err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("entries = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSchedule_RoundRobin(t *testing.T) {
	body := `{"task_list": ` + twoTasks + `, "algo": "rr", "tq": 1}`
	code, env := do(t, testServer(), "POST", "/api/v1/schedule", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", code, env.Error)
	}
	var got []model.ScheduleEntry
	json.Unmarshal(env.Data, &got)
	// A runs at 9, B arrives at 10 and is queued ahead of A's requeue.
	want := []model.ScheduleEntry{
		{Task: "A", Start: 9, End: 10, Date: "2025-09-27"},
		{Task: "B", Start: 10, End: 11, Date: "2025-09-27"},
		{Task: "A", Start: 11, End: 12, Date: "2025-09-27"},
	}
	if len(got) != len(want) {
		t.Fatalf("entries = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSchedule_EmptyTaskList(t *testing.T) {
	code, env := do(t, testServer(), "POST", "/api/v1/schedule", `{"task_list": [], "algo": "sjf"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if string(env.Data) != "[]" {
		t.Errorf("data = %s, want []", env.Data)
	}
}

func TestSchedule_Errors(t *testing.T) {
	badDate := strings.Replace(twoTasks, `"date": "2025-09-27"}, "importance": "High"`, `"date": "27/09/2025"}, "importance": "High"`, 1)
	tests := []struct {
		name string
		body string
		code model.ErrorCode
	}{
		{"unknown algorithm", `{"task_list": [], "algo": "lottery"}`, model.ErrInvalidArgument},
		{"missing quantum", `{"task_list": ` + twoTasks + `, "algo": "rr"}`, model.ErrInvalidArgument},
		{"negative quantum", `{"task_list": ` + twoTasks + `, "algo": "rr", "tq": -2}`, model.ErrInvalidArgument},
		{"bad deadline date", `{"task_list": ` + badDate + `, "algo": "edf"}`, model.ErrParse},
		{"bad hour", `{"task_list": [{"id":1,"taskName":"A","duration":1,"arrivalTime":{"hrs":30,"date":"2025-09-27"},"deadlineTime":{"hrs":1,"date":"2025-09-28"},"importance":"Low"}], "algo": "fcfs"}`, model.ErrParse},
		{"zero duration", `{"task_list": [{"id":1,"taskName":"A","duration":0,"arrivalTime":{"hrs":1,"date":"2025-09-27"},"deadlineTime":{"hrs":1,"date":"2025-09-28"},"importance":"Low"}], "algo": "fcfs"}`, model.ErrInvalidArgument},
		{"invalid json", `not json`, model.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := do(t, testServer(), "POST", "/api/v1/schedule", tt.body)
			if code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", code)
			}
			if env.Status != "error" {
				t.Errorf("status = %q, want error", env.Status)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestFeatures(t *testing.T) {
	code, env := do(t, testServer(), "POST", "/api/v1/features", `{"task_list": `+twoTasks+`}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", code, env.Error)
	}
	var data map[string]float64
	json.Unmarshal(env.Data, &data)
	if data["num_tasks"] != 2 {
		t.Errorf("num_tasks = %v, want 2", data["num_tasks"])
	}
	if data["total_workload"] != 3 {
		t.Errorf("total_workload = %v, want 3", data["total_workload"])
	}

	code, env = do(t, testServer(), "POST", "/api/v1/features", `{"task_list": []}`)
	if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != model.ErrInvalidArgument {
		t.Errorf("empty features: status = %d, error = %+v", code, env.Error)
	}
}

func TestDatasets_NoStore(t *testing.T) {
	code, env := do(t, testServer(), "GET", "/api/v1/datasets/", "")
	if code != http.StatusNotFound || env.Error == nil || env.Error.Code != model.ErrNotFound {
		t.Errorf("status = %d, error = %+v, want 404 NOT_FOUND", code, env.Error)
	}
}

func TestDatasets(t *testing.T) {
	srv, runID := testStoreServer(t)

	env := doGet(t, srv, "/api/v1/datasets/")
	if env.Pagination == nil || env.Pagination.Total != 1 {
		t.Fatalf("pagination = %+v, want total 1", env.Pagination)
	}

	env = doGet(t, srv, "/api/v1/datasets/"+runID)
	var detail struct {
		ID          string         `json:"id"`
		Kind        string         `json:"kind"`
		LabelCounts map[string]int `json:"label_counts"`
	}
	json.Unmarshal(env.Data, &detail)
	if detail.ID != runID || detail.Kind != "algo" {
		t.Errorf("detail = %+v", detail)
	}
	if detail.LabelCounts["0"] != 2 || detail.LabelCounts["1"] != 2 || detail.LabelCounts["2"] != 1 {
		t.Errorf("label_counts = %v", detail.LabelCounts)
	}

	env = doGet(t, srv, "/api/v1/datasets/"+runID+"/samples?limit=2&offset=2")
	var samples []model.Sample
	json.Unmarshal(env.Data, &samples)
	if len(samples) != 2 || samples[0].Batch != 2 {
		t.Errorf("samples = %+v, want batches 2,3", samples)
	}
	if env.Pagination == nil || !env.Pagination.HasMore || env.Pagination.Total != 5 {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	code, env := do(t, srv, "GET", "/api/v1/datasets/run_missing", "")
	if code != http.StatusNotFound || env.Error == nil || env.Error.Code != model.ErrNotFound {
		t.Errorf("missing run: status = %d, error = %+v", code, env.Error)
	}
	code, _ = do(t, srv, "GET", "/api/v1/datasets/run_missing/samples", "")
	if code != http.StatusNotFound {
		t.Errorf("missing run samples: status = %d, want 404", code)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   model.ErrorCode
	}{
		{&model.ParseError{TaskID: 1, Field: "arrivalTime.date", Value: "x"}, http.StatusBadRequest, model.ErrParse},
		{model.NewInvalidArgumentError("bad"), http.StatusBadRequest, model.ErrInvalidArgument},
		{model.NewNotFoundError("dataset run", "r"), http.StatusNotFound, model.ErrNotFound},
		{context.Canceled, http.StatusInternalServerError, model.ErrInternal},
	}
	for _, tt := range tests {
		status, apiErr := classify(tt.err)
		if status != tt.status || apiErr.Code != tt.code {
			t.Errorf("classify(%v) = %d %s, want %d %s", tt.err, status, apiErr.Code, tt.status, tt.code)
		}
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		keep    bool
	}{
		{"none supplied", "", false},
		{"well formed", "req_abc12345", true},
		{"caller trace id", "trace-7f3a_01", true},
		{"contains space", "bad id", false},
		{"too long", strings.Repeat("a", 65), false},
	}
	srv := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/health", nil)
			if tt.inbound != "" {
				req.Header.Set("X-Request-ID", tt.inbound)
			}
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, req)

			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			got := w.Header().Get("X-Request-ID")
			if got != env.RequestID {
				t.Errorf("X-Request-ID = %q, envelope request_id = %q", got, env.RequestID)
			}
			if tt.keep {
				if got != tt.inbound {
					t.Errorf("X-Request-ID = %q, want %q", got, tt.inbound)
				}
				return
			}
			if got == tt.inbound || !strings.HasPrefix(got, "req_") {
				t.Errorf("X-Request-ID = %q, want a fresh req_ id", got)
			}
		})
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	srv := New(config.DefaultServerConfig(), logger)

	req := httptest.NewRequest("GET", "/api/v1/datasets/", nil)
	req.Header.Set("X-Request-ID", "req_logline1")
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	line := buf.String()
	for _, want := range []string{
		"level=WARN",
		"component=server",
		"request_id=req_logline1",
		"status=" + strconv.Itoa(w.Code),
		"bytes=" + strconv.Itoa(w.Body.Len()),
	} {
		if !strings.Contains(line, want) {
			t.Errorf("access log missing %q:\n%s", want, line)
		}
	}
}

func TestLevelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   slog.Level
	}{
		{http.StatusOK, slog.LevelInfo},
		{http.StatusNotModified, slog.LevelInfo},
		{http.StatusBadRequest, slog.LevelWarn},
		{http.StatusServiceUnavailable, slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelForStatus(tt.status); got != tt.want {
			t.Errorf("levelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestSchedule_UnknownImportanceWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	srv := New(config.DefaultServerConfig(), logger)

	body := `{"algo": "ps", "task_list": [
	  {"id": 7, "taskName": "X", "duration": 1,
	   "arrivalTime": {"hrs": 9, "date": "2025-09-27"},
	   "deadlineTime": {"hrs": 18, "date": "2025-09-27"}, "importance": "Critical"},
	  {"id": 8, "taskName": "Y", "duration": 1,
	   "arrivalTime": {"hrs": 9, "date": "2025-09-27"},
	   "deadlineTime": {"hrs": 18, "date": "2025-09-27"}, "importance": "High"}]}`
	code, env := do(t, srv, "POST", "/api/v1/schedule", body)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200, error = %+v", code, env.Error)
	}
	if !strings.Contains(buf.String(), "unknown importance ranked as medium") || !strings.Contains(buf.String(), "task_ids=[7]") {
		t.Errorf("missing warning for task 7:\n%s", buf.String())
	}

	buf.Reset()
	do(t, srv, "POST", "/api/v1/schedule", `{"algo": "fcfs", "task_list": `+twoTasks+`}`)
	if strings.Contains(buf.String(), "unknown importance") {
		t.Errorf("unexpected warning for valid importance:\n%s", buf.String())
	}
}
