// Package collector turns search keywords into structured candidate posts.
// It walks the category taxonomy in priority order, fetches each keyword
// from the source, filters obvious noise, and deduplicates against a
// session ledger that is reset at the start of every scan.

package collector

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"

	"go-gighunt-engine/internal/catalog"
	"go-gighunt-engine/internal/models"
)

// ErrNotAuthenticated is returned when no usable auth session is loaded.
// The scan aborts early with a diagnostic instead of crashing.
var ErrNotAuthenticated = errors.New("no authenticated session loaded")

// minPostLength is the shortest text worth classifying.
const minPostLength = 30

// farmingDropPhrases is the cheap content-level block applied before a post
// ever reaches the classifier. The classifier carries the full list.
var farmingDropPhrases = []string{
	"rt to enter", "retweet to win", "retweet and follow",
	"tag 3", "tag your friends", "like and rt",
	"like and retweet", "follow and rt",
}

// Source fetches raw candidate posts for one keyword.
type Source interface {
	// Ready reports whether the source can be used at all; an
	// ErrNotAuthenticated result aborts the scan before any fetch.
	Ready() error

	// Search returns up to limit candidates for the keyword. Category and
	// keyword tagging is the collector's job, not the source's.
	Search(ctx context.Context, keyword string, limit int) ([]models.CandidatePost, error)
}

// Filter narrows a scan to one category or one priority tier. The zero
// value selects every category.
type Filter struct {
	Key      string
	Priority int
}

// CategoryBatch is the per-category slice of one scan's results.
type CategoryBatch struct {
	Category string
	Name     string
	Priority int
	Posts    []models.CandidatePost
}

// Result is everything one ScanByCategory invocation collected.
type Result struct {
	Batches []CategoryBatch
	Total   int
}

type Collector struct {
	source        Source
	keywordDelay  time.Duration
	categoryDelay time.Duration

	// mu serializes scans: overlapping scheduled jobs share one browser
	// session, so concurrent ticks queue instead of racing it.
	mu      sync.Mutex
	session mapset.Set[string]
}

func New(source Source, keywordDelay, categoryDelay time.Duration) *Collector {
	return &Collector{
		source:        source,
		keywordDelay:  keywordDelay,
		categoryDelay: categoryDelay,
		session:       mapset.NewSet[string](),
	}
}

// ScanByCategory fetches candidates for every selected category, sorted by
// ascending priority, keywords in declared order. Per-keyword failures are
// logged and skipped; only a missing auth session aborts the whole scan.
func (c *Collector) ScanByCategory(ctx context.Context, filter Filter, perKeyword int) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.source.Ready(); err != nil {
		log.Printf("❌ Collector cannot scan: %v", err)
		return &Result{}, err
	}

	// reset the session ledger at the start of every scan
	c.session.Clear()

	cats := selectCategories(filter)
	result := &Result{}

	for i, cat := range cats {
		log.Printf("📁 Category %q (priority %d, %d keywords)", cat.Name, cat.Priority, len(cat.Keywords))

		posts := c.scanCategory(ctx, cat, perKeyword)
		result.Batches = append(result.Batches, CategoryBatch{
			Category: cat.Key,
			Name:     cat.Name,
			Priority: cat.Priority,
			Posts:    posts,
		})
		result.Total += len(posts)
		log.Printf("✅ Category %q complete: %d unique posts", cat.Name, len(posts))

		// cool down before the next category
		if i < len(cats)-1 {
			time.Sleep(c.categoryDelay)
		}
	}

	return result, nil
}

func (c *Collector) scanCategory(ctx context.Context, cat catalog.Category, perKeyword int) []models.CandidatePost {
	var out []models.CandidatePost

	for i, keyword := range cat.Keywords {
		posts, err := c.source.Search(ctx, keyword, perKeyword)
		if err != nil {
			log.Printf("   ✗ [%d/%d] %q failed: %v", i+1, len(cat.Keywords), keyword, err)
			continue
		}

		kept := 0
		for _, post := range posts {
			if !passesContentFilter(post) {
				continue
			}
			if c.session.Contains(post.SourceID) {
				continue
			}
			c.session.Add(post.SourceID)

			post.Category = cat.Key
			post.Keyword = keyword
			out = append(out, post)
			kept++
		}
		log.Printf("   ✓ [%d/%d] %q: %d new posts (%d filtered)", i+1, len(cat.Keywords), keyword, kept, len(posts)-kept)

		if i < len(cat.Keywords)-1 {
			time.Sleep(c.keywordDelay)
		}
	}

	return out
}

// passesContentFilter drops posts too short to classify and obvious
// engagement farming before classification spends time on them.
func passesContentFilter(post models.CandidatePost) bool {
	if len(post.Text) < minPostLength {
		return false
	}
	lower := strings.ToLower(post.Text)
	for _, phrase := range farmingDropPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

func selectCategories(filter Filter) []catalog.Category {
	if filter.Key != "" {
		if cat, ok := catalog.Get(filter.Key); ok {
			return []catalog.Category{cat}
		}
		log.Printf("⚠️ Unknown category %q, nothing to scan", filter.Key)
		return nil
	}
	if filter.Priority > 0 {
		return catalog.ByPriority(filter.Priority)
	}
	return catalog.All()
}
