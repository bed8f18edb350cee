package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gyaneshwarpardhi/blueprint/internal/metrics"
)

// JobState is the lifecycle of a background compile job.
type JobState string

const (
	JobQueued    JobState = "queued"
	JobRunning   JobState = "running"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Job is the observable state of one submitted compile.
type Job struct {
	ID          string    `json:"id"`
	State       JobState  `json:"state"`
	Language    string    `json:"language"`
	SubmittedAt time.Time `json:"submitted_at"`
	Result      *Result   `json:"result,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type jobWork struct {
	id       string
	document []byte
	language string
}

// Queue is a fixed-size worker pool compiling documents in the background,
// with a bounded input channel and an in-memory job table.
type Queue struct {
	compiler *Compiler
	timeout  time.Duration
	queue    chan jobWork

	mu   sync.RWMutex
	jobs map[string]*Job

	wg sync.WaitGroup
}

// NewQueue creates and starts a queue with n workers and capacity depth.
func NewQueue(ctx context.Context, compiler *Compiler, n, depth int, timeout time.Duration) *Queue {
	q := &Queue{
		compiler: compiler,
		timeout:  timeout,
		queue:    make(chan jobWork, depth),
		jobs:     make(map[string]*Job),
	}
	for i := 0; i < n; i++ {
		q.wg.Add(1)
		go func() {
			defer q.wg.Done()
			q.run(ctx)
		}()
	}
	return q
}

func (q *Queue) run(ctx context.Context) {
	for {
		select {
		case w, ok := <-q.queue:
			if !ok {
				return
			}
			q.process(ctx, w)
		case <-ctx.Done():
			return
		}
	}
}

func (q *Queue) process(ctx context.Context, w jobWork) {
	q.setState(w.id, JobRunning)

	tctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	res, err := q.compiler.Compile(tctx, w.document, w.language)

	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[w.id]
	if !ok {
		return
	}
	if err != nil {
		job.State = JobFailed
		job.Error = err.Error()
		return
	}
	res.JobID = w.id
	job.State = JobSucceeded
	job.Result = res
}

// Submit enqueues a compile without blocking. Returns the job id, or false
// when the queue is full.
func (q *Queue) Submit(document []byte, language string) (string, bool) {
	id := uuid.NewString()
	job := &Job{
		ID:          id,
		State:       JobQueued,
		Language:    language,
		SubmittedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	q.jobs[id] = job
	q.mu.Unlock()

	select {
	case q.queue <- jobWork{id: id, document: document, language: language}:
		metrics.JobsQueued.Inc()
		return id, true
	default:
		q.mu.Lock()
		delete(q.jobs, id)
		q.mu.Unlock()
		metrics.JobsDropped.Inc()
		return "", false
	}
}

// Get returns a snapshot of the job with the given id.
func (q *Queue) Get(id string) (Job, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	job, ok := q.jobs[id]
	if !ok {
		return Job{}, false
	}
	return *job, true
}

// Utilization returns queue used / capacity (0-1).
func (q *Queue) Utilization() float64 {
	if cap(q.queue) == 0 {
		return 0
	}
	return float64(len(q.queue)) / float64(cap(q.queue))
}

func (q *Queue) setState(id string, state JobState) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if job, ok := q.jobs[id]; ok {
		job.State = state
	}
}

// Drain closes the queue and waits for all workers to finish.
func (q *Queue) Drain() {
	close(q.queue)
	q.wg.Wait()
}
