package alert

import (
	"errors"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-gighunt-engine/internal/models"
)

// TelegramNotifier delivers lead alerts over a Telegram bot.
type TelegramNotifier struct {
	api *tgbotapi.BotAPI
}

func NewTelegramNotifier(token string) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api}, nil
}

// SendLeadAlert formats and sends one lead. A blocked or deleted chat is
// reported as ErrRecipientUnreachable so the dispatcher can clean up.
func (t *TelegramNotifier) SendLeadAlert(chatID int64, lead models.Lead) error {
	msg := tgbotapi.NewMessage(chatID, formatLeadMessage(lead))
	msg.ParseMode = "HTML"

	if _, err := t.api.Send(msg); err != nil {
		if isUnreachable(err) {
			return fmt.Errorf("%w: %v", ErrRecipientUnreachable, err)
		}
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}

func formatLeadMessage(lead models.Lead) string {
	icon := "💼"
	switch {
	case lead.Score >= 80:
		icon = "🔥"
	case lead.Score >= 60:
		icon = "⭐"
	}

	hotcake := ""
	if lead.Hotcake {
		hotcake = " [HOT CAKE]"
	}

	verified := ""
	if lead.Author.Verified {
		verified = " ✓"
	}

	excerpt := lead.Text
	if len(excerpt) > 300 {
		excerpt = excerpt[:300] + "..."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s <b>New Gig Alert [%d/100]%s</b>\n\n", icon, lead.Score, hotcake)
	fmt.Fprintf(&b, "<b>@%s</b>%s\n\n", html.EscapeString(lead.Author.Handle), verified)
	fmt.Fprintf(&b, "%s\n\n", html.EscapeString(excerpt))
	fmt.Fprintf(&b, "📊 %d likes • %d reposts • %d replies\n",
		lead.Engagement.Likes, lead.Engagement.Reposts, lead.Engagement.Replies)

	if len(lead.Links) > 0 {
		fmt.Fprintf(&b, "🔗 %s\n", html.EscapeString(lead.Links[0]))
	}

	fmt.Fprintf(&b, "\n<a href=\"%s\">View post →</a>", lead.URL)
	return b.String()
}

func isUnreachable(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) && tgErr.Code == 403 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "blocked") || strings.Contains(msg, "chat not found") ||
		strings.Contains(msg, "deactivated")
}
