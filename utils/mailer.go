package utils

import (
	"fmt"

	"github.com/k3a/html2text"
	"gopkg.in/gomail.v2"

	"farmlink/initializers"
)

// SendEmail delivers an HTML mail with a plain-text alternative derived
// from the same body. Callers treat failure as best-effort.
func SendEmail(to string, subject string, bodyHTML string) error {
	config, err := initializers.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}
	if config.SMTPHost == "" {
		return fmt.Errorf("smtp is not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.EmailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", bodyHTML)
	m.AddAlternative("text/plain", html2text.HTML2Text(bodyHTML))

	d := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPass)
	return d.DialAndSend(m)
}
