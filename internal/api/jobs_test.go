package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/internal/corpustest"
)

func TestJobLifecycle(t *testing.T) {
	s := newTestServer(t, Config{})

	body := `{"text":"<quran ref=\"1:1\">` + corpustest.Fatiha1 + `</quran>"}`
	code, _, data := doRequest(t, s, http.MethodPost, "/jobs", body)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}

	var created Job
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	if created.ID == "" {
		t.Fatal("job has no ID")
	}

	// The job runs in a goroutine, poll until it settles.
	var job Job
	deadline := time.Now().Add(5 * time.Second)
	for {
		code, _, data := doRequest(t, s, http.MethodGet, "/jobs/"+created.ID, "")
		if code != http.StatusOK {
			t.Fatalf("status = %d, want 200", code)
		}
		if err := json.Unmarshal(data, &job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		if job.Status == JobStatusCompleted || job.Status == JobStatusFailed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("job stuck in status %s", job.Status)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != JobStatusCompleted {
		t.Fatalf("status = %s, error = %s, want completed", job.Status, job.Error)
	}
	if job.Progress != 100 {
		t.Errorf("progress = %d, want 100", job.Progress)
	}
	if job.Result == nil || len(job.Result.Quotes) != 1 {
		t.Fatalf("result = %+v, want one quote", job.Result)
	}
	if !job.Result.AllValid {
		t.Error("result not all valid for an exact quote")
	}

	// A settled job cannot be cancelled.
	code, envelope, _ := doRequest(t, s, http.MethodDelete, "/jobs/"+created.ID, "")
	if code != http.StatusBadRequest {
		t.Fatalf("cancel status = %d, want 400", code)
	}
	if envelope.Error == nil || envelope.Error.Code != "CANCEL_FAILED" {
		t.Errorf("error = %+v, want CANCEL_FAILED", envelope.Error)
	}
}

func TestJobNotFound(t *testing.T) {
	s := newTestServer(t, Config{})

	code, _, _ := doRequest(t, s, http.MethodGet, "/jobs/no-such-job", "")
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
}

func TestJobValidation(t *testing.T) {
	s := newTestServer(t, Config{})

	code, _, _ := doRequest(t, s, http.MethodPost, "/jobs", `{"text":""}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for empty text", code)
	}

	code, _, _ = doRequest(t, s, http.MethodPost, "/jobs", `{"text":"x","tag_format":"bogus"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for bogus format", code)
	}
}

func TestJobStoreCancel(t *testing.T) {
	store := NewJobStore()
	job := store.Create(ProcessRequest{Text: "x"})

	if err := store.Cancel(job.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	got, _ := store.Get(job.ID)
	if got.Status != JobStatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
	if got.CompletedAt == "" {
		t.Error("no completion timestamp")
	}

	if err := store.Cancel(job.ID); err == nil {
		t.Error("second cancel succeeded, want error")
	}
}

func TestJobStoreUpdate(t *testing.T) {
	store := NewJobStore()
	job := store.Create(ProcessRequest{Text: "x"})

	result := &process.Output{AllValid: true}
	if err := store.Update(job.ID, JobStatusCompleted, 100, result, ""); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := store.Get(job.ID)
	if got.Status != JobStatusCompleted || got.Result != result {
		t.Errorf("job = %+v, want completed with result", got)
	}

	if err := store.Update("missing", JobStatusRunning, 0, nil, ""); err == nil {
		t.Error("update of missing job succeeded, want error")
	}
}
