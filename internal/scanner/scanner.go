// Package scanner orchestrates a scan: collect candidates per category,
// deduplicate against the lead store, classify, persist acceptances, and
// hand the qualifying batch to the alert dispatcher once per run.

package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"go-gighunt-engine/internal/catalog"
	"go-gighunt-engine/internal/classify"
	"go-gighunt-engine/internal/collector"
	"go-gighunt-engine/internal/models"
	"go-gighunt-engine/internal/store"
)

const (
	// StandardMinScore accepts everything the classifier lets through.
	StandardMinScore = 50
	// DeepMinScore is the permissive threshold the deep scan uses.
	DeepMinScore = 45
	// QualifyingScore admits a saved lead into the alert batch.
	QualifyingScore = 60
)

// Collector is the candidate source the scanner drives.
type Collector interface {
	ScanByCategory(ctx context.Context, filter collector.Filter, perKeyword int) (*collector.Result, error)
}

// LeadStore is the persistence surface the scanner needs.
type LeadStore interface {
	FindBySourceID(ctx context.Context, sourceID string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
}

// Dispatcher receives the qualifying batch once per run.
type Dispatcher interface {
	Dispatch(ctx context.Context, leads []models.Lead) int
}

// Options parameterizes one scan.
type Options struct {
	Filter        collector.Filter
	PerKeywordCap int
	MinScore      int
}

// Stats are the cumulative counters across runs of one Scanner.
type Stats struct {
	TotalScans      int       `json:"total_scans"`
	TotalLeadsSaved int       `json:"total_leads_saved"`
	TotalDuplicates int       `json:"total_duplicates"`
	TotalRejected   int       `json:"total_rejected"`
	LastScanTime    time.Time `json:"last_scan_time"`
}

type Scanner struct {
	collector  Collector
	store      LeadStore
	dispatcher Dispatcher
	now        func() time.Time

	mu    sync.Mutex
	stats Stats
}

func New(c Collector, s LeadStore, d Dispatcher) *Scanner {
	return &Scanner{collector: c, store: s, dispatcher: d, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Scan runs one full pass. It never returns an error: every failure mode is
// folded into the returned run (zero totals, Error field, skipped items).
func (s *Scanner) Scan(ctx context.Context, opts Options) (run *models.ScanRun) {
	if opts.PerKeywordCap <= 0 {
		opts.PerKeywordCap = 15
	}
	if opts.MinScore <= 0 {
		opts.MinScore = StandardMinScore
	}

	run = &models.ScanRun{StartedAt: s.now()}
	defer func() {
		if r := recover(); r != nil {
			run.Error = fmt.Sprintf("scan panicked: %v", r)
		}
		run.FinishedAt = s.now()
		s.record(run)
	}()

	log.Printf("🎯 Starting scan (filter=%+v cap=%d min=%d)", opts.Filter, opts.PerKeywordCap, opts.MinScore)

	result, err := s.collector.ScanByCategory(ctx, opts.Filter, opts.PerKeywordCap)
	if err != nil {
		run.Error = err.Error()
		return run
	}
	if result.Total == 0 {
		log.Println("⚠️ No candidates found in any category")
		return run
	}

	var qualifying []models.Lead
	for _, batch := range result.Batches {
		stats := s.processBatch(ctx, batch, opts.MinScore, &qualifying)

		run.Categories++
		run.TotalScraped += stats.Scraped
		run.TotalSaved += stats.Saved
		run.Duplicates += stats.Duplicates
		run.Rejected += stats.Rejected
		run.Breakdown = append(run.Breakdown, stats)
	}

	// one batched alert pass per run, never per item
	if len(qualifying) > 0 && s.dispatcher != nil {
		run.Alerted = s.dispatcher.Dispatch(ctx, qualifying)
	}

	log.Printf("✅ Scan complete: %d scraped, %d saved, %d duplicates, %d rejected, %d alerted",
		run.TotalScraped, run.TotalSaved, run.Duplicates, run.Rejected, run.Alerted)
	return run
}

func (s *Scanner) processBatch(ctx context.Context, batch collector.CategoryBatch, minScore int, qualifying *[]models.Lead) models.CategoryStats {
	stats := models.CategoryStats{Category: batch.Category, Scraped: len(batch.Posts)}

	for _, post := range batch.Posts {
		existing, err := s.store.FindBySourceID(ctx, post.SourceID)
		if err != nil {
			log.Printf("   ⚠️ Lookup failed for %s: %v", post.SourceID, err)
			continue
		}
		if existing != nil {
			stats.Duplicates++
			continue
		}

		res := classify.Classify(post)
		if res.Score < minScore {
			stats.Rejected++
			continue
		}

		lead := models.Lead{
			SourceID:   post.SourceID,
			Text:       post.Text,
			Author:     post.Author,
			URL:        post.URL,
			Engagement: post.Engagement,
			Links:      post.Links,
			Score:      res.Score,
			Category:   catalog.MapToOutput(post.Category),
			Hotcake:    res.Score >= models.HotcakeScore,
			PostedAt:   post.PostedAt,
			FirstSeen:  s.now(),
		}

		if err := s.store.Create(ctx, &lead); err != nil {
			// losing the insert race to a concurrent writer is an
			// ordinary duplicate
			if errors.Is(err, store.ErrDuplicateLead) {
				stats.Duplicates++
			} else {
				log.Printf("   ⚠️ Save failed for %s: %v", lead.SourceID, err)
			}
			continue
		}
		stats.Saved++

		if lead.Hotcake {
			log.Printf("   🔥 HOTCAKE [%d]: %.50s...", lead.Score, lead.Text)
		}

		if lead.Score >= QualifyingScore {
			*qualifying = append(*qualifying, lead)
		}
	}

	return stats
}

// QuickScan covers only the priority-1 categories with a small cap.
func (s *Scanner) QuickScan(ctx context.Context) *models.ScanRun {
	log.Println("⚡ Running quick scan (priority 1 only)...")
	return s.Scan(ctx, Options{
		Filter:        collector.Filter{Priority: 1},
		PerKeywordCap: 10,
		MinScore:      StandardMinScore,
	})
}

// FullScan covers every category at the standard threshold.
func (s *Scanner) FullScan(ctx context.Context) *models.ScanRun {
	log.Println("🔍 Running full scan (all categories)...")
	return s.Scan(ctx, Options{
		PerKeywordCap: 15,
		MinScore:      StandardMinScore,
	})
}

func (s *Scanner) record(run *models.ScanRun) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats.TotalScans++
	s.stats.TotalLeadsSaved += run.TotalSaved
	s.stats.TotalDuplicates += run.Duplicates
	s.stats.TotalRejected += run.Rejected
	s.stats.LastScanTime = run.FinishedAt
}

// Stats returns the cumulative counters across all runs.
func (s *Scanner) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
