package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nonobot/nono-alert/internal/nohitter"
)

type fakeRunner struct {
	report *nohitter.Report
	err    error
	resets int
}

func (f *fakeRunner) Reconcile(ctx context.Context) (*nohitter.Report, error) {
	return f.report, f.err
}

func (f *fakeRunner) Reset(ctx context.Context) *nohitter.ResetReport {
	f.resets++
	return &nohitter.ResetReport{TeamsCleared: 30, Message: "cleaned"}
}

func TestReconcileSuccess(t *testing.T) {
	runner := &fakeRunner{report: &nohitter.Report{
		LiveGames: 3, InProgress: 1, TextsSent: 1, Message: "3 live, 1 no-hitters in progress, 1 texts sent",
	}}
	h := New(runner, nil)

	rec := httptest.NewRecorder()
	h.Reconcile(rec, httptest.NewRequest(http.MethodPost, "/reconcile", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got nohitter.Report
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.TextsSent != 1 || got.LiveGames != 3 {
		t.Errorf("report = %+v", got)
	}
}

func TestReconcilePartialErrorsStill200(t *testing.T) {
	runner := &fakeRunner{report: &nohitter.Report{
		LiveGames:  1,
		TeamErrors: []string{"store get team 108: connection reset"},
		Message:    "1 live, 1 no-hitters in progress, 0 texts sent",
	}}
	h := New(runner, nil)

	rec := httptest.NewRecorder()
	h.Reconcile(rec, httptest.NewRequest(http.MethodPost, "/reconcile", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 even with isolated team errors", rec.Code)
	}
}

func TestReconcileUpstreamFailure400(t *testing.T) {
	runner := &fakeRunner{err: &nohitter.UpstreamError{Op: "schedule", Err: errors.New("502")}}
	h := New(runner, nil)

	rec := httptest.NewRecorder()
	h.Reconcile(rec, httptest.NewRequest(http.MethodPost, "/reconcile", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp struct {
		Error struct {
			Code   string `json:"code"`
			Detail string `json:"detail"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Error.Code != "UPSTREAM_ERROR" {
		t.Errorf("error code = %q, want UPSTREAM_ERROR", resp.Error.Code)
	}
}

func TestResetAlways200(t *testing.T) {
	runner := &fakeRunner{}
	h := New(runner, nil)

	rec := httptest.NewRecorder()
	h.Reset(rec, httptest.NewRequest(http.MethodPost, "/reset", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if runner.resets != 1 {
		t.Errorf("resets = %d, want 1", runner.resets)
	}
}

func TestStatusBeforeAndAfterRun(t *testing.T) {
	runner := &fakeRunner{report: &nohitter.Report{LiveGames: 2, Message: "ok"}}
	h := New(runner, nil)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	var before map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&before); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if before["last_run"] != nil {
		t.Errorf("last_run before any run = %v, want null", before["last_run"])
	}

	h.Reconcile(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/reconcile", nil))

	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	var after map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&after); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if after["last_run"] == nil || after["last_run_at"] == nil {
		t.Errorf("status after a run = %v, want report + timestamp", after)
	}
}
