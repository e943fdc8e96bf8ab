package collector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gighunt-engine/internal/models"
)

// stubSource serves canned posts per keyword and records the order keywords
// were searched in.
type stubSource struct {
	posts    map[string][]models.CandidatePost
	searched []string
	ready    error
	failOn   string
}

func (s *stubSource) Ready() error {
	return s.ready
}

func (s *stubSource) Search(ctx context.Context, keyword string, limit int) ([]models.CandidatePost, error) {
	s.searched = append(s.searched, keyword)
	if keyword == s.failOn {
		return nil, errors.New("boom")
	}
	posts := s.posts[keyword]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

func longPost(id, text string) models.CandidatePost {
	for len(text) < minPostLength {
		text += " more details inside"
	}
	return models.CandidatePost{SourceID: id, Text: text, URL: "https://x.com/u/status/" + id}
}

func TestScanByCategoryNotAuthenticated(t *testing.T) {
	src := &stubSource{ready: ErrNotAuthenticated}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{}, 10)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, src.searched)
}

func TestScanByCategorySessionDedup(t *testing.T) {
	// the same post surfaces under two keywords of the same category and
	// again under a different category
	dup := longPost("100", "We're hiring a brand ambassador for our community")
	src := &stubSource{posts: map[string][]models.CandidatePost{
		"ambassador program": {dup, longPost("101", "Join our team, ambassador role available now")},
		"brand ambassador":   {dup},
		"we're hiring":       {dup, longPost("102", "Now hiring a community moderator, apply today")},
	}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Priority: 1}, 10)
	require.NoError(t, err)

	seen := map[string]int{}
	for _, batch := range result.Batches {
		for _, p := range batch.Posts {
			seen[p.SourceID]++
		}
	}
	assert.Equal(t, 1, seen["100"], "duplicate source id must appear once per session")
	assert.Equal(t, 3, result.Total)
}

func TestSessionLedgerResetsBetweenScans(t *testing.T) {
	post := longPost("200", "We're hiring a community manager, DM us to apply")
	src := &stubSource{posts: map[string][]models.CandidatePost{
		"community manager": {post},
	}}
	c := New(src, 0, 0)

	first, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 10)
	require.NoError(t, err)
	second, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, first.Total)
	assert.Equal(t, 1, second.Total, "a new scan starts with a clean session ledger")
}

func TestContentFilter(t *testing.T) {
	src := &stubSource{posts: map[string][]models.CandidatePost{
		"community manager": {
			{SourceID: "1", Text: "too short"},
			longPost("2", "RT to enter our community manager giveaway right now"),
			longPost("3", "We're hiring a community manager, apply on our site"),
		},
	}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "3", result.Batches[0].Posts[0].SourceID)
}

func TestCategoryAndKeywordTagging(t *testing.T) {
	src := &stubSource{posts: map[string][]models.CandidatePost{
		"community manager": {longPost("10", "We're hiring a community manager, apply now please")},
	}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 10)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)

	post := result.Batches[0].Posts[0]
	assert.Equal(t, "community", post.Category)
	assert.Equal(t, "community manager", post.Keyword)
}

func TestPerKeywordFailureContinuesScan(t *testing.T) {
	src := &stubSource{
		failOn: "community manager",
		posts: map[string][]models.CandidatePost{
			"community lead": {longPost("20", "Hiring a community lead for our platform, apply now")},
		},
	}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total, "one failed keyword must not sink the category")
}

func TestCategoriesOrderedByPriority(t *testing.T) {
	src := &stubSource{posts: map[string][]models.CandidatePost{}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{}, 5)
	require.NoError(t, err)
	require.Len(t, result.Batches, 10)
	for i := 1; i < len(result.Batches); i++ {
		assert.LessOrEqual(t, result.Batches[i-1].Priority, result.Batches[i].Priority)
	}
}

func TestPriorityFilterOnlyTouchesThatTier(t *testing.T) {
	src := &stubSource{posts: map[string][]models.CandidatePost{}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Priority: 1}, 5)
	require.NoError(t, err)
	require.Len(t, result.Batches, 2)
	for _, batch := range result.Batches {
		assert.Equal(t, 1, batch.Priority)
	}
}

func TestUnknownCategoryYieldsEmptyResult(t *testing.T) {
	src := &stubSource{posts: map[string][]models.CandidatePost{}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Key: "nope"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Batches)
}

func TestPerKeywordCapRespected(t *testing.T) {
	var many []models.CandidatePost
	for i := 0; i < 20; i++ {
		many = append(many, longPost(fmt.Sprintf("cap-%d", i), "We're hiring a community manager, apply right now"))
	}
	src := &stubSource{posts: map[string][]models.CandidatePost{
		"community manager": many,
	}}
	c := New(src, 0, 0)

	result, err := c.ScanByCategory(context.Background(), Filter{Key: "community"}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, len(result.Batches[0].Posts))
}
