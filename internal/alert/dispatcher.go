// Package alert fans qualifying leads out to subscribers, paced and
// deduplicated against a rolling cool-down window.

package alert

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"go-gighunt-engine/internal/ledger"
	"go-gighunt-engine/internal/models"
)

// ErrRecipientUnreachable marks a channel-level delivery failure that will
// never succeed on retry (blocked bot, deleted chat). Non-fatal: the
// dispatcher clears the channel address and moves on.
var ErrRecipientUnreachable = errors.New("recipient unreachable")

// Notifier sends one lead alert to one channel address.
type Notifier interface {
	SendLeadAlert(chatID int64, lead models.Lead) error
}

// Directory is the subscriber store the dispatcher reads from.
type Directory interface {
	ActiveSubscribers(ctx context.Context) ([]models.Subscriber, error)
	ClearChannel(ctx context.Context, chatID int64) error
}

const defaultThreshold = 60

type Dispatcher struct {
	directory Directory
	notifier  Notifier
	cooldown  ledger.Ledger
	batchCap  int
	sendDelay time.Duration
}

func New(directory Directory, notifier Notifier, cooldown ledger.Ledger, batchCap int, sendDelay time.Duration) *Dispatcher {
	if batchCap <= 0 {
		batchCap = 5
	}
	return &Dispatcher{
		directory: directory,
		notifier:  notifier,
		cooldown:  cooldown,
		batchCap:  batchCap,
		sendDelay: sendDelay,
	}
}

// Dispatch sends the qualifying leads of one scan run to every eligible
// subscriber: filtered by personal threshold, best first, capped per run,
// and skipping pairs still inside the cool-down window. Returns the number
// of alerts actually sent.
func (d *Dispatcher) Dispatch(ctx context.Context, leads []models.Lead) int {
	if len(leads) == 0 {
		return 0
	}

	subs, err := d.directory.ActiveSubscribers(ctx)
	if err != nil {
		log.Printf("❌ Alert dispatch aborted, subscriber query failed: %v", err)
		return 0
	}
	if len(subs) == 0 {
		return 0
	}

	log.Printf("📲 Dispatching %d qualifying leads to %d subscribers", len(leads), len(subs))

	sent := 0
	for _, sub := range subs {
		if !sub.Active {
			continue
		}
		sent += d.dispatchTo(ctx, sub, leads)
	}
	return sent
}

func (d *Dispatcher) dispatchTo(ctx context.Context, sub models.Subscriber, leads []models.Lead) int {
	threshold := sub.AlertThreshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}

	batch := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if lead.Score >= threshold {
			batch = append(batch, lead)
		}
	}
	if len(batch) == 0 {
		return 0
	}

	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Score > batch[j].Score
	})
	if len(batch) > d.batchCap {
		batch = batch[:d.batchCap]
	}

	sent := 0
	for _, lead := range batch {
		key := cooldownKey(sub.ChatID, lead.SourceID)

		seen, err := d.cooldown.Seen(ctx, key)
		if err != nil {
			log.Printf("⚠️ Cooldown lookup failed for %s: %v", key, err)
		}
		if seen {
			continue
		}

		if err := d.notifier.SendLeadAlert(sub.ChatID, lead); err != nil {
			if errors.Is(err, ErrRecipientUnreachable) {
				log.Printf("⚠️ Subscriber %s unreachable, clearing channel", sub.Username)
				if clearErr := d.directory.ClearChannel(ctx, sub.ChatID); clearErr != nil {
					log.Printf("⚠️ Failed to clear channel for %s: %v", sub.Username, clearErr)
				}
				break
			}
			log.Printf("⚠️ Alert to %s failed: %v", sub.Username, err)
			continue
		}

		if err := d.cooldown.Mark(ctx, key); err != nil {
			log.Printf("⚠️ Cooldown mark failed for %s: %v", key, err)
		}
		sent++
		time.Sleep(d.sendDelay)
	}

	if sent > 0 {
		log.Printf("   ✅ %s: %d alerts sent", sub.Username, sent)
	}
	return sent
}

func cooldownKey(chatID int64, sourceID string) string {
	return fmt.Sprintf("%d:%s", chatID, sourceID)
}
