package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ozgurk/ledgerlens/pkg/logger"
)

// Scheduler manages scheduled jobs.
type Scheduler struct {
	cron    *cron.Cron
	logger  *logger.Logger
	jobs    map[string]Job
	history map[string]*JobHistory
	mu      sync.RWMutex
}

// New creates a new scheduler.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		logger:  log,
		jobs:    make(map[string]Job),
		history: make(map[string]*JobHistory),
	}
}

// AddJob adds a job to the scheduler.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobName := job.Name()

	if _, exists := s.jobs[jobName]; exists {
		return fmt.Errorf("job %s already exists", jobName)
	}

	_, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", jobName, err)
	}

	s.jobs[jobName] = job
	s.history[jobName] = &JobHistory{}

	s.logger.WithFields(map[string]interface{}{
		"job":      jobName,
		"schedule": job.Schedule(),
	}).Info("Job added to scheduler")

	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// runJob executes one job and records the result.
func (s *Scheduler) runJob(job Job) {
	start := time.Now()
	log := s.logger.WithField("job", job.Name())
	log.Info("Job started")

	err := job.Run(context.Background())

	result := JobResult{
		JobName:   job.Name(),
		StartTime: start,
		EndTime:   time.Now(),
		Duration:  time.Since(start),
		Success:   err == nil,
	}
	if err != nil {
		result.Error = err.Error()
		log.WithError(err).Error("Job failed")
	} else {
		log.WithField("duration", result.Duration).Info("Job completed")
	}

	s.mu.Lock()
	if h, ok := s.history[job.Name()]; ok {
		h.AddResult(result)
	}
	s.mu.Unlock()
}

// History returns the recorded results for a job.
func (s *Scheduler) History(jobName string) []JobResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	h, ok := s.history[jobName]
	if !ok {
		return nil
	}
	out := make([]JobResult, len(h.Results))
	copy(out, h.Results)
	return out
}
