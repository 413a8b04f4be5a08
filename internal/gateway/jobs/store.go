// Package jobs tracks extraction job status per document. The pipeline core
// stays stateless; the request layer owns this store and feeds it through a
// reporting callback. A second extraction request for a document whose job is
// still running is rejected rather than raced.
package jobs

import (
	"errors"
	"sync"
	"time"

	"stixify/internal/metrics"
)

var (
	ErrJobRunning = errors.New("jobs: extraction already running for this document")
	ErrNotFound   = errors.New("jobs: no job for this document")
)

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

// Job is the visible state of one extraction run.
type Job struct {
	DocumentID  string    `json:"documentId"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	BundleURL   string    `json:"bundleUrl,omitempty"`
	ObjectCount int       `json:"objectCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (j Job) Terminal() bool {
	return j.Status == StatusDone || j.Status == StatusFailed
}

type Store struct {
	mu   sync.RWMutex
	jobs map[string]Job
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]Job)}
}

// Begin registers a new run for documentID. It fails with ErrJobRunning while
// a previous run for the same document is still in flight.
func (s *Store) Begin(documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j, ok := s.jobs[documentID]; ok && !j.Terminal() {
		return ErrJobRunning
	}
	s.jobs[documentID] = Job{
		DocumentID: documentID,
		Status:     StatusRunning,
		UpdatedAt:  time.Now().UTC(),
	}
	return nil
}

// Done marks the run finished with its result.
func (s *Store) Done(documentID, bundleURL string, objectCount int) {
	s.set(Job{
		DocumentID:  documentID,
		Status:      StatusDone,
		BundleURL:   bundleURL,
		ObjectCount: objectCount,
	})
	metrics.ExtractionJobs.WithLabelValues(string(StatusDone)).Inc()
}

// Fail marks the run failed. Only storage-side failures land here; pipeline
// emptiness is a done job with zero objects.
func (s *Store) Fail(documentID string, err error) {
	j := Job{DocumentID: documentID, Status: StatusFailed}
	if err != nil {
		j.Error = err.Error()
	}
	s.set(j)
	metrics.ExtractionJobs.WithLabelValues(string(StatusFailed)).Inc()
}

func (s *Store) set(j Job) {
	j.UpdatedAt = time.Now().UTC()
	s.mu.Lock()
	s.jobs[j.DocumentID] = j
	s.mu.Unlock()
}

// Get returns the most recent job for documentID.
func (s *Store) Get(documentID string) (Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j, ok := s.jobs[documentID]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}
