package store

import (
	"context"
	"fmt"

	"go-gighunt-engine/internal/models"
)

// ActiveSubscribers returns every subscriber with an active entitlement and
// a configured notification channel.
func (s *Store) ActiveSubscribers(ctx context.Context) ([]models.Subscriber, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, active, alert_threshold, chat_id
		FROM subscribers
		WHERE active = TRUE AND chat_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Username, &sub.Active, &sub.AlertThreshold, &sub.ChatID); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ClearChannel detaches a notification channel address after the channel
// reported the recipient unreachable.
func (s *Store) ClearChannel(ctx context.Context, chatID int64) error {
	_, err := s.db.Exec(ctx,
		`UPDATE subscribers SET chat_id = NULL WHERE chat_id = $1`, chatID)
	if err != nil {
		return fmt.Errorf("failed to clear channel: %w", err)
	}
	return nil
}
