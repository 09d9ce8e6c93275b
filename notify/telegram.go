// Package notify reports a finished run to a Telegram chat.
package notify

import (
	"fmt"
	"log"

	"triplecrown-scraper/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends run reports to one chat
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier authorizes the bot token
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}
	log.Printf("Authorized on account %s\n", bot.Self.UserName)

	return &Notifier{bot: bot, chatID: chatID}, nil
}

// SendChart sends the rendered chart with a summary caption
func (n *Notifier) SendChart(chartPath string, records []models.Record) error {
	photo := tgbotapi.NewPhoto(n.chatID, tgbotapi.FilePath(chartPath))
	photo.Caption = Summary(records)

	if _, err := n.bot.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart: %w", err)
	}
	return nil
}

// Summary describes records in one line
func Summary(records []models.Record) string {
	if len(records) == 0 {
		return "No Triple Crown winners scraped this run."
	}

	first, last := 0, 0
	for _, r := range records {
		year, err := r.Year.Int()
		if err != nil {
			continue
		}
		if first == 0 || year < first {
			first = year
		}
		if year > last {
			last = year
		}
	}

	if first == 0 {
		return fmt.Sprintf("%d Triple Crown winners scraped.", len(records))
	}
	return fmt.Sprintf("%d Triple Crown winners scraped, %d to %d.", len(records), first, last)
}
