// Package scheduler runs the recurring scan cadences on top of robfig/cron
// and exposes the manual triggers the admin API calls into.

package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"go-gighunt-engine/internal/catalog"
	"go-gighunt-engine/internal/collector"
	"go-gighunt-engine/internal/models"
	"go-gighunt-engine/internal/scanner"
)

// Scan cadences. Quick and full overlap on purpose: quick keeps priority-1
// categories fresh, full sweeps the long tail, and the store and cooldown
// ledger absorb anything both pick up.
const (
	quickSpec    = "*/30 * * * *"
	fullSpec     = "0 */2 * * *"
	deepSpec     = "0 */6 * * *"
	rotationSpec = "0 * * * *"
)

// Runner is the scan surface the scheduler drives.
type Runner interface {
	Scan(ctx context.Context, opts scanner.Options) *models.ScanRun
	QuickScan(ctx context.Context) *models.ScanRun
	FullScan(ctx context.Context) *models.ScanRun
	Stats() scanner.Stats
}

// JobInfo describes one registered cron job for the status endpoint.
type JobInfo struct {
	Name string `json:"name"`
	Spec string `json:"spec"`
}

// Status is the snapshot reported by the admin API.
type Status struct {
	Running bool          `json:"running"`
	Jobs    []JobInfo     `json:"jobs"`
	Scanner scanner.Stats `json:"scanner"`
}

type Scheduler struct {
	runner Runner

	mu            sync.Mutex
	cron          *cron.Cron
	jobs          []JobInfo
	kickoff       *time.Timer
	rotationIndex int
}

func New(runner Runner) *Scheduler {
	return &Scheduler{runner: runner}
}

// Start registers the four recurring jobs and schedules an initial quick
// scan shortly after boot. Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron != nil {
		return
	}

	c := cron.New()
	s.register(c, "quick-scan", quickSpec, func() {
		s.runner.QuickScan(context.Background())
	})
	s.register(c, "full-scan", fullSpec, func() {
		s.runner.FullScan(context.Background())
	})
	s.register(c, "deep-scan", deepSpec, func() {
		s.deepScan(context.Background())
	})
	s.register(c, "category-rotation", rotationSpec, func() {
		s.rotationScan(context.Background())
	})
	c.Start()
	s.cron = c

	// first pass without waiting for the half-hour boundary
	s.kickoff = time.AfterFunc(5*time.Second, func() {
		log.Println("🚀 Running initial scan...")
		s.runner.QuickScan(context.Background())
	})

	log.Printf("⏰ Scheduler started with %d jobs", len(s.jobs))
}

func (s *Scheduler) register(c *cron.Cron, name, spec string, fn func()) {
	if _, err := c.AddFunc(spec, fn); err != nil {
		log.Printf("❌ Failed to register %s (%s): %v", name, spec, err)
		return
	}
	s.jobs = append(s.jobs, JobInfo{Name: name, Spec: spec})
}

// Stop halts the cron loop and cancels the pending kickoff. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return
	}
	if s.kickoff != nil {
		s.kickoff.Stop()
		s.kickoff = nil
	}
	s.cron.Stop()
	s.cron = nil
	s.jobs = nil
	log.Println("⏸️ Scheduler stopped")
}

func (s *Scheduler) deepScan(ctx context.Context) *models.ScanRun {
	log.Println("🌊 Running deep scan (all categories, relaxed threshold)...")
	return s.runner.Scan(ctx, scanner.Options{
		PerKeywordCap: 25,
		MinScore:      scanner.DeepMinScore,
	})
}

// rotationScan hits one rotation category per hour, cycling in order.
func (s *Scheduler) rotationScan(ctx context.Context) *models.ScanRun {
	s.mu.Lock()
	key := catalog.RotationKeys[s.rotationIndex%len(catalog.RotationKeys)]
	s.rotationIndex++
	s.mu.Unlock()

	log.Printf("🔄 Rotation scan: %s", key)
	return s.runner.Scan(ctx, scanner.Options{
		Filter:        collector.Filter{Key: key},
		PerKeywordCap: 20,
		MinScore:      scanner.StandardMinScore,
	})
}

// ManualScan triggers one of the named scan types outside the cadence.
func (s *Scheduler) ManualScan(ctx context.Context, scanType string) (*models.ScanRun, error) {
	switch scanType {
	case "quick":
		return s.runner.QuickScan(ctx), nil
	case "full":
		return s.runner.FullScan(ctx), nil
	case "deep":
		return s.deepScan(ctx), nil
	default:
		return nil, fmt.Errorf("unknown scan type %q", scanType)
	}
}

// ScanCategory triggers a one-off scan of a single category.
func (s *Scheduler) ScanCategory(ctx context.Context, key string) (*models.ScanRun, error) {
	if _, ok := catalog.Get(key); !ok {
		return nil, fmt.Errorf("unknown category %q", key)
	}
	return s.runner.Scan(ctx, scanner.Options{
		Filter:        collector.Filter{Key: key},
		PerKeywordCap: 15,
		MinScore:      scanner.StandardMinScore,
	}), nil
}

// Status reports the scheduler and cumulative scanner state.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	running := s.cron != nil
	jobs := make([]JobInfo, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	return Status{
		Running: running,
		Jobs:    jobs,
		Scanner: s.runner.Stats(),
	}
}
