package initializers

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var TelegramBot *tgbotapi.BotAPI

// ConnectTelegram is optional: without a bot token low-stock pushes are
// skipped, the StockAlert rows are still written.
func ConnectTelegram(config *Config) {
	if config.TelegramBotToken == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, telegram alerts disabled")
		return
	}

	bot, err := tgbotapi.NewBotAPI(config.TelegramBotToken)
	if err != nil {
		log.Printf("Failed to connect to telegram: %v", err)
		return
	}

	TelegramBot = bot
	log.Printf("Telegram bot authorized as %s", bot.Self.UserName)
}
