package initializers

import (
	"log"

	"github.com/streadway/amqp"
)

const NotificationsExchange = "farmlink.notifications"

var AmqpChannel *amqp.Channel

// ConnectRabbit is optional: when AMQP_URL is empty the dispatcher simply
// skips publishing and the pipeline keeps working.
func ConnectRabbit(config *Config) {
	if config.AmqpUri == "" {
		log.Println("AMQP_URL not set, notification events will not be published")
		return
	}

	conn, err := amqp.Dial(config.AmqpUri)
	if err != nil {
		log.Printf("Failed to connect to rabbitmq: %v", err)
		return
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("Failed to open rabbitmq channel: %v", err)
		return
	}

	err = ch.ExchangeDeclare(NotificationsExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		log.Printf("Failed to declare exchange: %v", err)
		return
	}

	AmqpChannel = ch
	log.Println("Connected to rabbitmq successfully")
}
