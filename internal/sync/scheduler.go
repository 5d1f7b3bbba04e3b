// internal/sync/scheduler.go
package sync

import (
	"context"
	"log"
	"time"
)

// Job is one named periodic trigger.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs its jobs sequentially on a fixed wall-clock interval. A
// failed job is logged and retried on the next tick; runs of the same job
// never overlap because ticks are consumed one at a time.
type Scheduler struct {
	interval time.Duration
	jobs     []Job
}

func NewScheduler(interval time.Duration, jobs ...Job) *Scheduler {
	return &Scheduler{interval: interval, jobs: jobs}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Printf("⏰ [SCHEDULER] started, interval: %s, jobs: %d", s.interval, len(s.jobs))

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 [SCHEDULER] stopped")
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, job := range s.jobs {
		if err := job.Run(ctx); err != nil {
			log.Printf("❌ [SCHEDULER] job %s failed: %v", job.Name, err)
			continue
		}
		log.Printf("✅ [SCHEDULER] job %s completed", job.Name)
	}
}
