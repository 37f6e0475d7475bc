package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/dispatch"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic market digest.
type Scheduler struct {
	Cron     *cron.Cron
	Analyzer *analyzer.Analyzer
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a *analyzer.Analyzer) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Analyzer: a,
		Ctx:      ctx,
	}
}

// Register adds the daily digest task on the given cron spec.
func (s *Scheduler) Register(digestCron string) error {
	if _, err := s.Cron.AddFunc(digestCron, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDigestNow executes the digest immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunDigestNow() {
	s.digestTask()
}

func (s *Scheduler) digestTask() {
	log.Println("[INFO] running market digest")
	sum := s.Analyzer.MarketSummary()
	for _, line := range strings.Split(dispatch.FormatSummary(sum), "\n") {
		if line != "" {
			log.Printf("[INFO] digest: %s", line)
		}
	}
}
