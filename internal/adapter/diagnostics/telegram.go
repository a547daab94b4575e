package diagnostics

import (
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/semmidev/mediasafe/internal/config"
)

// TelegramReporter forwards diagnostic reports to a Telegram chat so upload
// failures show up without log access. Delivery errors are swallowed; a
// diagnostics channel must never block the backup flow.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(cfg *config.DiagnosticsConfig) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	var chatID int64
	fmt.Sscanf(cfg.ChatID, "%d", &chatID)

	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

func (t *TelegramReporter) Report(message string, context map[string]string) {
	var b strings.Builder
	b.WriteString("⚠️ Backup diagnostic\n\n")
	b.WriteString(message)

	keys := make([]string, 0, len(context))
	for k := range context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("\n%s: %s", k, context[k]))
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	_, _ = t.bot.Send(msg)
}
