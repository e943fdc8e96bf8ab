// Package classify scores candidate posts with an ordered phrase-rule table.
// Classification is a pure function of the post: no clock, no store, no
// network. A post is either rejected with score 0 or scored in [50,100].

package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-gighunt-engine/internal/models"
)

const (
	baseScore = 50
	maxScore  = 100
)

// Breakdown flags the signals that contributed to an accepted score.
type Breakdown struct {
	ExplicitHiring     bool `json:"explicit_hiring"`
	HasLink            bool `json:"has_link"`
	HasPayment         bool `json:"has_payment"`
	HasApplicationForm bool `json:"has_application_form"`
}

// Result is the outcome of classifying one candidate post.
type Result struct {
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// candidate is the pre-computed view of a post the rules match against.
type candidate struct {
	text       string // normalized, lowercased
	emojiCount int    // counted on the raw text
	hasLink    bool
	verified   bool
	likes      int
	reposts    int
}

func (c candidate) hasHiringWord() bool {
	return strings.Contains(c.text, "hiring") ||
		strings.Contains(c.text, "looking for") ||
		strings.Contains(c.text, "seeking")
}

// normalizeText strips combining marks and lowercases so phrase matching is
// stable across styled unicode variants.
func normalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return strings.ToLower(result)
}

func countEmojis(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x1F300 && r <= 0x1F9FF {
			n++
		}
	}
	return n
}

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func newCandidate(post models.CandidatePost) candidate {
	return candidate{
		text:       normalizeText(post.Text),
		emojiCount: countEmojis(post.Text),
		hasLink:    len(post.Links) > 0,
		verified:   post.Author.Verified,
		likes:      post.Engagement.Likes,
		reposts:    post.Engagement.Reposts,
	}
}

func reject(reason string) Result {
	return Result{Score: 0, Reasons: []string{reason}}
}

// Classify runs the full four-phase rule table over one post.
func Classify(post models.CandidatePost) Result {
	c := newCandidate(post)

	// phase 1: instant rejections, first match wins
	for _, rule := range rejectRules {
		if rule.match(c) {
			return reject(rule.reason)
		}
	}

	// phase 2: explicit hiring language, or "hiring"/"recruiting" plus a
	// clear named role
	explicit := containsAny(c.text, explicitHiringPhrases)
	if !explicit {
		hasHiring := strings.Contains(c.text, "hiring") || strings.Contains(c.text, "recruiting")
		if !hasHiring || !containsAny(c.text, clearRolePhrases) {
			return reject("REJECTED: no explicit hiring language")
		}
	}

	// phase 3: at least one way to apply
	hasDM := containsAny(c.text, dmPhrases)
	hasEmail := strings.Contains(c.text, "email") || strings.Contains(c.text, "@")
	hasApply := strings.Contains(c.text, "apply") || strings.Contains(c.text, "application")
	if !c.hasLink && !hasDM && !hasEmail && !hasApply {
		return reject("REJECTED: no application method")
	}

	// phase 4: additive scoring from the base
	score := baseScore
	reasons := []string{"passed strict filters"}
	for _, rule := range scoreRules {
		if rule.applies(c) {
			score += rule.delta
			reasons = append(reasons, rule.reason)
		}
	}

	if score > maxScore {
		score = maxScore
	}
	if score < baseScore {
		score = baseScore
	}

	return Result{
		Score:   score,
		Reasons: reasons,
		Breakdown: Breakdown{
			ExplicitHiring:     explicit,
			HasLink:            c.hasLink,
			HasPayment:         containsAny(c.text, paymentPhrases),
			HasApplicationForm: containsAny(c.text, applicationFormMarkers),
		},
	}
}

// IsValidJob is the lightweight pre-filter: the phase 1 hard blocks plus the
// explicit-hiring requirement, without scoring.
func IsValidJob(post models.CandidatePost) bool {
	text := normalizeText(post.Text)

	if containsAny(text, farmingPhrases) ||
		containsAny(text, jobSeekerPhrases) ||
		containsAny(text, justTalkingPhrases) ||
		containsAny(text, scamPhrases) {
		return false
	}

	if containsAny(text, explicitHiringPhrases) {
		return true
	}
	return strings.Contains(text, "hiring") || strings.Contains(text, "recruiting")
}
