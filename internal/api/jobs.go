package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hifzlab/isnad/core/process"
	"github.com/hifzlab/isnad/core/quote"
)

// JobStatus represents the current state of a job.
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Job represents an asynchronous document processing job.
type Job struct {
	ID          string             `json:"id"`
	Status      JobStatus          `json:"status"`
	Progress    int                `json:"progress"` // 0-100
	Result      *process.Output    `json:"result,omitempty"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   string             `json:"created_at"`
	UpdatedAt   string             `json:"updated_at"`
	CompletedAt string             `json:"completed_at,omitempty"`
	Request     ProcessRequest     `json:"request"`
	ctx         context.Context    `json:"-"`
	cancel      context.CancelFunc `json:"-"`
}

// JobStore manages processing jobs in memory.
type JobStore struct {
	jobs map[string]*Job
	mu   sync.RWMutex
}

// NewJobStore creates a new job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
	}
}

// Create creates a new job and returns it.
func (s *JobStore) Create(req ProcessRequest) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now().UTC().Format(time.RFC3339)

	job := &Job{
		ID:        uuid.New().String(),
		Status:    JobStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		Request:   req,
		ctx:       ctx,
		cancel:    cancel,
	}

	s.jobs[job.ID] = job
	return job
}

// Get retrieves a job by ID.
func (s *JobStore) Get(id string) (*Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, exists := s.jobs[id]
	return job, exists
}

// Update updates a job's status and progress.
func (s *JobStore) Update(id string, status JobStatus, progress int, result *process.Output, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}

	job.Status = status
	job.Progress = progress
	job.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if result != nil {
		job.Result = result
	}
	if errMsg != "" {
		job.Error = errMsg
	}
	if status == JobStatusCompleted || status == JobStatusFailed || status == JobStatusCancelled {
		job.CompletedAt = job.UpdatedAt
	}

	return nil
}

// List returns all jobs.
func (s *JobStore) List() []*Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}

// Cancel cancels a pending or running job.
func (s *JobStore) Cancel(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, exists := s.jobs[id]
	if !exists {
		return fmt.Errorf("job not found: %s", id)
	}
	if job.Status != JobStatusPending && job.Status != JobStatusRunning {
		return fmt.Errorf("job cannot be cancelled (status: %s)", job.Status)
	}

	if job.cancel != nil {
		job.cancel()
	}

	now := time.Now().UTC().Format(time.RFC3339)
	job.Status = JobStatusCancelled
	job.UpdatedAt = now
	job.CompletedAt = now

	return nil
}

// runJob processes the job's document in a goroutine, pushing progress to
// the WebSocket hub as it goes.
func (s *Server) runJob(job *Job) {
	go func() {
		s.jobs.Update(job.ID, JobStatusRunning, 10, nil, "")
		s.hub.Broadcast(ProgressMessage{
			Type: "progress", JobID: job.ID, Stage: "processing",
			Progress: 10, Message: "Processing document",
		})

		select {
		case <-job.ctx.Done():
			s.jobs.Update(job.ID, JobStatusCancelled, 10, nil, "Job cancelled by user")
			return
		default:
		}

		processor := s.processor
		if job.Request.TagFormat != "" {
			opts := s.processor.Options()
			opts.TagFormat = quote.TagFormat(job.Request.TagFormat)
			processor = process.New(s.engine, opts)
		}

		result := processor.Process(job.Request.Text)

		select {
		case <-job.ctx.Done():
			s.jobs.Update(job.ID, JobStatusCancelled, 90, nil, "Job cancelled by user")
			return
		default:
		}

		s.jobs.Update(job.ID, JobStatusCompleted, 100, &result, "")
		s.hub.Broadcast(ProgressMessage{
			Type: "complete", JobID: job.ID, Progress: 100,
			Message: fmt.Sprintf("Processed %d quote(s)", len(result.Quotes)),
			Data: map[string]interface{}{
				"all_valid": result.AllValid,
				"quotes":    len(result.Quotes),
				"warnings":  len(result.Warnings),
			},
		})
	}()
}

// handleJobs handles POST /jobs (create) and GET /jobs (list).
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createJobHandler(w, r)
	case http.MethodGet:
		jobs := s.jobs.List()
		respondWithTotal(w, http.StatusOK, jobs, len(jobs))
	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and POST are allowed")
	}
}

func (s *Server) createJobHandler(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "MISSING_PARAMS", "text is required")
		return
	}
	if req.TagFormat != "" && !quote.TagFormat(req.TagFormat).Valid() {
		respondError(w, http.StatusBadRequest, "INVALID_FORMAT", "Unknown tag_format: "+req.TagFormat)
		return
	}

	job := s.jobs.Create(req)
	s.runJob(job)

	respond(w, http.StatusCreated, job)
}

// handleJobByID handles GET /jobs/{id} and DELETE /jobs/{id}.
func (s *Server) handleJobByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" {
		respondError(w, http.StatusBadRequest, "MISSING_ID", "Job ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, exists := s.jobs.Get(id)
		if !exists {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Job not found")
			return
		}
		respond(w, http.StatusOK, job)

	case http.MethodDelete:
		if err := s.jobs.Cancel(id); err != nil {
			if strings.Contains(err.Error(), "not found") {
				respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
				return
			}
			respondError(w, http.StatusBadRequest, "CANCEL_FAILED", err.Error())
			return
		}
		respond(w, http.StatusOK, map[string]string{"message": "Job cancelled"})

	default:
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET and DELETE are allowed")
	}
}
