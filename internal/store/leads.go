package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"go-gighunt-engine/internal/models"
)

const uniqueViolation = "23505"

const leadColumns = `source_id, text, author_handle, author_name, author_verified,
	url, likes, reposts, replies, links, score, category, hotcake, posted_at, first_seen`

// FindBySourceID returns the lead with the given source id, or nil when it
// has never been seen.
func (s *Store) FindBySourceID(ctx context.Context, sourceID string) (*models.Lead, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE source_id = $1`, sourceID)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	return lead, nil
}

// Create inserts a new lead. A uniqueness violation on source_id is
// reported as ErrDuplicateLead so concurrent writers can treat the race as
// an ordinary duplicate.
func (s *Store) Create(ctx context.Context, lead *models.Lead) error {
	linksJSON, err := json.Marshal(lead.Links)
	if err != nil {
		return fmt.Errorf("marshal links: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO leads (source_id, text, author_handle, author_name, author_verified,
			url, likes, reposts, replies, links, score, category, hotcake, posted_at, first_seen)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		lead.SourceID, lead.Text, lead.Author.Handle, lead.Author.DisplayName, lead.Author.Verified,
		lead.URL, lead.Engagement.Likes, lead.Engagement.Reposts, lead.Engagement.Replies,
		string(linksJSON), lead.Score, lead.Category, lead.Hotcake, lead.PostedAt, lead.FirstSeen)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", ErrDuplicateLead, lead.SourceID)
		}
		return fmt.Errorf("failed to create lead: %w", err)
	}
	return nil
}

// QueryTop returns the highest-scoring leads at or above minScore first
// seen after the given time, newest batch first by score.
func (s *Store) QueryTop(ctx context.Context, minScore int, since time.Time, limit int) ([]models.Lead, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+leadColumns+` FROM leads
		 WHERE score >= $1 AND first_seen >= $2
		 ORDER BY score DESC, first_seen DESC
		 LIMIT $3`,
		minScore, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	var leads []models.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func scanLead(row pgx.Row) (*models.Lead, error) {
	var lead models.Lead
	var linksJSON string

	err := row.Scan(
		&lead.SourceID, &lead.Text, &lead.Author.Handle, &lead.Author.DisplayName,
		&lead.Author.Verified, &lead.URL, &lead.Engagement.Likes, &lead.Engagement.Reposts,
		&lead.Engagement.Replies, &linksJSON, &lead.Score, &lead.Category,
		&lead.Hotcake, &lead.PostedAt, &lead.FirstSeen,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(linksJSON), &lead.Links); err != nil {
		lead.Links = nil
	}
	return &lead, nil
}
