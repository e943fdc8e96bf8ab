package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-gighunt-engine/internal/models"
)

func post(text string) models.CandidatePost {
	return models.CandidatePost{SourceID: "1", Text: text}
}

func TestClassifyRejections(t *testing.T) {
	tests := []struct {
		name   string
		post   models.CandidatePost
		reason string
	}{
		{
			name:   "farming",
			post:   post("RT to win a whitelist spot! Tag your friends"),
			reason: "REJECTED: engagement farming",
		},
		{
			name:   "farming beats positive signals",
			post:   post("We're hiring! $500/month, apply now. RT to win!"),
			reason: "REJECTED: engagement farming",
		},
		{
			name:   "job seeker",
			post:   post("I'm looking for a community manager role, hire me"),
			reason: "REJECTED: job seeker post",
		},
		{
			name:   "just talking",
			post:   post("Just became head of community at a cool startup"),
			reason: "REJECTED: talking about it, not hiring",
		},
		{
			name:   "scam",
			post:   post("We're hiring! Guaranteed passive income, 100x your money"),
			reason: "REJECTED: scam indicators",
		},
		{
			name:   "technical role",
			post:   post("We're hiring a senior backend developer, apply now"),
			reason: "REJECTED: technical role",
		},
		{
			name:   "personal announcement without hiring word",
			post:   post("Officially joined the core contributors today"),
			reason: "REJECTED: personal announcement, not hiring",
		},
		{
			name:   "no explicit hiring language",
			post:   post("Great community management opportunities out there, apply via DM"),
			reason: "REJECTED: no explicit hiring language",
		},
		{
			name:   "no application method",
			post:   post("We're hiring a Community Manager to grow with us"),
			reason: "REJECTED: no application method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Classify(tt.post)
			assert.Equal(t, 0, res.Score)
			assert.Equal(t, []string{tt.reason}, res.Reasons)
		})
	}
}

func TestClassifyEmojiDensity(t *testing.T) {
	text := "We're hiring, apply now! "
	for i := 0; i < 16; i++ {
		text += "\U0001F525"
	}
	res := Classify(post(text))
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, "REJECTED: excessive emojis", res.Reasons[0])
}

func TestClassifyAnnouncementWithHiringWordSurvives(t *testing.T) {
	res := Classify(post("Excited to announce we're hiring a moderator! Apply now via DM"))
	assert.GreaterOrEqual(t, res.Score, 50)
}

func TestClassifyHighQualityLead(t *testing.T) {
	p := models.CandidatePost{
		SourceID: "42",
		Text:     "We're hiring a Community Manager, $500/month, apply at forms.gle/xyz",
		Author:   models.Author{Handle: "acme", Verified: true},
		Engagement: models.Engagement{
			Likes:   7,
			Reposts: 3,
		},
		Links: []string{"https://forms.gle/xyz"},
	}

	res := Classify(p)
	// 50 base + 10 link + 10 form bonus + 15 payment + 5 verified + 5 engagement
	assert.GreaterOrEqual(t, res.Score, 85)
	assert.True(t, res.Breakdown.ExplicitHiring)
	assert.True(t, res.Breakdown.HasLink)
	assert.True(t, res.Breakdown.HasPayment)
	assert.True(t, res.Breakdown.HasApplicationForm)
	assert.Equal(t, "passed strict filters", res.Reasons[0])
}

func TestClassifyScoreClampedAt100(t *testing.T) {
	p := models.CandidatePost{
		SourceID: "43",
		Text:     "We're hiring ambassador for our team! $2000 paid monthly. Apply here: forms.gle/abc",
		Author:   models.Author{Verified: true},
		Engagement: models.Engagement{Likes: 50, Reposts: 10},
		Links:    []string{"https://forms.gle/abc"},
	}

	res := Classify(p)
	assert.Equal(t, 100, res.Score)
}

func TestClassifyAcceptedScoreRange(t *testing.T) {
	accepted := []models.CandidatePost{
		post("We're hiring a moderator, DM me for details"),
		post("Join our team! Seeking a community lead, apply now"),
		{SourceID: "9", Text: "Now hiring! Applications open", Links: []string{"https://example.com/jobs"}},
	}

	for _, p := range accepted {
		res := Classify(p)
		assert.GreaterOrEqual(t, res.Score, 50, "text: %s", p.Text)
		assert.LessOrEqual(t, res.Score, 100, "text: %s", p.Text)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	p := models.CandidatePost{
		SourceID:   "7",
		Text:       "We're hiring a moderator for our community, apply now",
		Engagement: models.Engagement{Likes: 5},
	}
	first := Classify(p)
	second := Classify(p)
	assert.Equal(t, first, second)
}

func TestIsValidJob(t *testing.T) {
	tests := []struct {
		text     string
		expected bool
	}{
		{"We're hiring a community manager", true},
		{"Recruiting moderators for the new server", true},
		{"RT to win! We're hiring", false},
		{"I'm looking for work, anyone hiring?", false},
		{"Guaranteed passive income, join us", false},
		{"Nice weather today", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsValidJob(post(tt.text)), "text: %s", tt.text)
	}
}
