package models

import (
	"time"
)

// Author is the snapshot of a post author at scrape time.
type Author struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Verified    bool   `json:"verified"`
}

// Engagement holds the public counters of a post.
type Engagement struct {
	Likes   int `json:"likes"`
	Reposts int `json:"reposts"`
	Replies int `json:"replies"`
}

// CandidatePost is a raw item pulled by the collector, before
// classification. It is produced per scan and never persisted directly.
type CandidatePost struct {
	SourceID   string     `json:"source_id"`
	Text       string     `json:"text"`
	Author     Author     `json:"author"`
	Engagement Engagement `json:"engagement"`
	Links      []string   `json:"links"`
	URL        string     `json:"url"`
	PostedAt   time.Time  `json:"posted_at"`
	Category   string     `json:"category"`
	Keyword    string     `json:"keyword"`
}

// Lead is a persisted, classified, deduplicated hiring opportunity.
// SourceID is unique across the store; a Lead is created once and never
// mutated by the scan pipeline.
type Lead struct {
	SourceID   string     `json:"source_id"`
	Text       string     `json:"text"`
	Author     Author     `json:"author"`
	URL        string     `json:"url"`
	Engagement Engagement `json:"engagement"`
	Links      []string   `json:"links"`
	Score      int        `json:"score"`
	Category   string     `json:"category"`
	Hotcake    bool       `json:"hotcake"`
	PostedAt   time.Time  `json:"posted_at"`
	FirstSeen  time.Time  `json:"first_seen"`
}

// HotcakeScore is the score at which a lead is flagged top-tier.
const HotcakeScore = 70

// Subscriber is an alert recipient with an active entitlement.
type Subscriber struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Active         bool   `json:"active"`
	AlertThreshold int    `json:"alert_threshold"`
	ChatID         int64  `json:"chat_id"`
}

// CategoryStats is the per-category breakdown of one scan run.
type CategoryStats struct {
	Category   string `json:"category"`
	Scraped    int    `json:"scraped"`
	Saved      int    `json:"saved"`
	Duplicates int    `json:"duplicates"`
	Rejected   int    `json:"rejected"`
}

// ScanRun is the ephemeral result of one orchestrated scan.
type ScanRun struct {
	StartedAt    time.Time       `json:"started_at"`
	FinishedAt   time.Time       `json:"finished_at"`
	Categories   int             `json:"categories"`
	TotalScraped int             `json:"total_scraped"`
	TotalSaved   int             `json:"total_saved"`
	Duplicates   int             `json:"duplicates"`
	Rejected     int             `json:"rejected"`
	Alerted      int             `json:"alerted"`
	Breakdown    []CategoryStats `json:"breakdown"`
	Error        string          `json:"error,omitempty"`
}
