package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	uuid "github.com/satori/go.uuid"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"farmlink/initializers"
	"farmlink/models"
	"farmlink/utils"
)

// NotificationEventPayload is the JSON shape published to the fanout
// exchange for external consumers (mobile push, analytics, ...).
type NotificationEventPayload struct {
	UserID    string `json:"user_id"`
	Event     string `json:"event"`
	OrderID   string `json:"order_id,omitempty"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

// Notify appends a notification row and pushes it out over the side
// channels. It never fails the caller: a notification that cannot be
// written must not roll back the order that triggered it.
func Notify(tx *gorm.DB, userID uuid.UUID, event models.NotificationEvent, orderID uuid.UUID, message string) {
	notification := models.Notification{
		ID:      uuid.NewV4(),
		UserID:  userID,
		Event:   event,
		OrderID: orderID,
		Message: message,
	}
	if err := tx.Create(&notification).Error; err != nil {
		log.Printf("Failed to create notification for user %s: %v", userID, err)
		return
	}

	publishEvent(notification)
}

// NotifyOnce suppresses duplicates by the structured (user, event, order)
// key. Used for the one-time "order delivered" notice so re-running the
// roll-up check never sends it twice.
func NotifyOnce(tx *gorm.DB, userID uuid.UUID, event models.NotificationEvent, orderID uuid.UUID, message string) {
	var existing models.Notification
	err := tx.Where("user_id = ? AND event = ? AND order_id = ?", userID, event, orderID).
		First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("Failed to check notification dedup for user %s: %v", userID, err)
		return
	}

	Notify(tx, userID, event, orderID, message)
}

func publishEvent(n models.Notification) {
	if err := utils.SendPersonalMessageToClient(n.UserID.String(), n.Message); err != nil {
		log.Printf("Websocket push skipped for user %s: %v", n.UserID, err)
	}

	if initializers.AmqpChannel == nil {
		return
	}

	payload := NotificationEventPayload{
		UserID:    n.UserID.String(),
		Event:     string(n.Event),
		Message:   n.Message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if n.OrderID != uuid.Nil {
		payload.OrderID = n.OrderID.String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal notification event: %v", err)
		return
	}

	err = initializers.AmqpChannel.Publish(initializers.NotificationsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		log.Printf("Failed to publish notification event: %v", err)
	}
}

// sendLowStockTelegram pushes a low-stock warning to the farmer's linked
// telegram chat, when both the bot and the chat id are configured.
func sendLowStockTelegram(db *gorm.DB, farmerID uuid.UUID, product models.Product, stock int) {
	if initializers.TelegramBot == nil {
		return
	}

	var farmer models.User
	if err := db.First(&farmer, "id = ?", farmerID).Error; err != nil || farmer.TelegramChatID == 0 {
		return
	}

	text := fmt.Sprintf("Low stock warning: %s is down to %d %s.", product.Name, stock, product.Unit)
	utils.SendTelegramMessage(farmer.TelegramChatID, text)
}
