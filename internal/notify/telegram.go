// Package notify tells the sales team about new leads.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/overnightmvp/7-day/internal/catalog"
	"github.com/overnightmvp/7-day/internal/logging"
	"github.com/overnightmvp/7-day/internal/models"
)

// sender is the part of *tgbotapi.BotAPI the notifier needs.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts new inquiries to an ops chat. With no bot token it
// only logs that the notification was skipped.
type TelegramNotifier struct {
	bot    sender
	chatID int64
	logger *logging.Logger
}

// NewTelegramNotifier connects to the Bot API. An empty token yields a
// disabled notifier rather than an error.
func NewTelegramNotifier(token string, chatID int64, logger *logging.Logger) (*TelegramNotifier, error) {
	if token == "" {
		logger.Warn("telegram bot token is empty, lead notifications disabled")
		return &TelegramNotifier{logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

// Enabled reports whether messages are actually sent.
func (n *TelegramNotifier) Enabled() bool {
	return n.bot != nil
}

// NotifyInquiryCreated announces a new lead. Failures are logged, never returned.
func (n *TelegramNotifier) NotifyInquiryCreated(ctx context.Context, inq models.Inquiry) {
	n.send(ctx, FormatInquiry(inq))
}

// FormatInquiry renders the lead summary sent to the ops chat as Telegram
// Markdown. Customer-entered text is escaped.
func FormatInquiry(inq models.Inquiry) string {
	var b strings.Builder
	b.WriteString("*New booking inquiry*\n\n")
	fmt.Fprintf(&b, "Experience: %s\n", escape(inq.ExperienceTitle))
	fmt.Fprintf(&b, "Company: %s\n", escape(inq.CompanyName))
	fmt.Fprintf(&b, "Contact: %s <%s>\n", escape(inq.ContactName), escape(inq.WorkEmail))
	if inq.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", escape(inq.Phone))
	}
	fmt.Fprintf(&b, "Team size: %d\n", inq.TeamSize)
	fmt.Fprintf(&b, "Preferred date: %s\n", inq.PreferredDate.Format("02 Jan 2006"))
	if inq.AlternateDate != nil {
		fmt.Fprintf(&b, "Alternate date: %s\n", inq.AlternateDate.Format("02 Jan 2006"))
	}
	fmt.Fprintf(&b, "Estimate: %s", catalog.FormatAUD(inq.EstimatedCost))
	return b.String()
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	log := n.logger.WithContext(ctx)

	if n.bot == nil {
		log.Debug().Str("text", text).Msg("notification skipped (bot disabled)")
		return
	}
	if err := ctx.Err(); err != nil {
		log.Debug().Int64("chat_id", n.chatID).Msg("notification skipped (context cancelled)")
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", n.chatID).Msg("failed to send telegram notification")
	}
}
