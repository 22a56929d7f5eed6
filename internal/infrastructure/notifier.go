package infrastructure

import (
	"fmt"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BellNotifier rings the terminal bell and prints a short banner. This is
// the audible alert for an operator sitting at the console.
type BellNotifier struct {
	Out io.Writer
}

func (n *BellNotifier) Alert(count int) error {
	_, err := fmt.Fprintf(n.Out, "\a[ALERT] %d dialog(s) waiting for an operator\n", count)
	return err
}

// TelegramNotifier forwards watcher alerts to an operator chat, so new
// requests reach the on-call manager even away from the console.
type TelegramNotifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

// NewTelegramNotifier returns nil when the token is missing or invalid, so
// callers can treat Telegram alerts as an optional feature.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		fmt.Printf("Warning: Telegram Bot Token issue: %v. Telegram alerts disabled.\n", err)
		return nil
	}
	return &TelegramNotifier{Bot: bot, ChatID: chatID}
}

func (n *TelegramNotifier) Alert(count int) error {
	text := fmt.Sprintf("🔔 *%d* dialog(s) need an operator", count)
	msg := tgbotapi.NewMessage(n.ChatID, text)
	msg.ParseMode = "Markdown"
	_, err := n.Bot.Send(msg)
	return err
}
