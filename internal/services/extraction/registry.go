package extraction

import (
	"context"
	"sync"
	"time"
)

// runningJob is the registry handle for one in-flight extraction task.
type runningJob struct {
	cancel    context.CancelFunc
	startedAt time.Time
}

// Registry maps job IDs to their running extraction tasks. It is owned by
// the orchestrator instance, not package state, so independent instances can
// coexist in tests. The persistent store remains the source of truth for job
// status; the registry only tracks liveness and cancellation handles.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*runningJob
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*runningJob),
	}
}

// Add registers a running job with its cancel function
func (r *Registry) Add(jobID string, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[jobID] = &runningJob{
		cancel:    cancel,
		startedAt: time.Now(),
	}
}

// Remove drops a job from the registry once it reaches a terminal state
func (r *Registry) Remove(jobID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, jobID)
}

// Cancel requests early termination of a running job. Returns false when the
// job is not running.
func (r *Registry) Cancel(jobID string) bool {
	r.mu.RLock()
	job, ok := r.jobs[jobID]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	job.cancel()
	return true
}

// IsRunning reports whether a job is currently registered
func (r *Registry) IsRunning(jobID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.jobs[jobID]
	return ok
}

// Count returns the number of registered jobs
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// ActiveIDs returns the IDs of all registered jobs
func (r *Registry) ActiveIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.jobs))
	for id := range r.jobs {
		ids = append(ids, id)
	}
	return ids
}
