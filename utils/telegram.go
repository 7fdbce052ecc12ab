package utils

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"farmlink/initializers"
)

func SendTelegramMessage(chatID int64, text string) {
	if initializers.TelegramBot == nil {
		return
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := initializers.TelegramBot.Send(msg); err != nil {
		log.Printf("Failed to send telegram message to chat %d: %v", chatID, err)
	}
}
