package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"slotify/config"
	"slotify/utils"

	"firebase.google.com/go/v4/messaging"
	mail "gopkg.in/mail.v2"
)

// EmailSender delivers a message to an email address.
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMSSender delivers a short message to a phone number.
type SMSSender interface {
	Send(to, message string) error
}

// PushSender delivers a push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// SMTPEmailSender sends email over SMTP.
type SMTPEmailSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPEmailSender() *SMTPEmailSender {
	cfg := config.AppConfig
	return &SMTPEmailSender{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

func (s *SMTPEmailSender) Send(to, subject, body string) error {
	message := mail.NewMessage()
	message.SetHeader("From", s.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := mail.NewDialer(s.host, s.port, s.username, s.password)
	if err := dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("smtp send to %s failed: %w", to, err)
	}
	return nil
}

// HTTPSMSSender posts messages to an SMS gateway API.
type HTTPSMSSender struct {
	client     *http.Client
	gatewayURL string
	apiKey     string
	senderID   string
}

func NewHTTPSMSSender() *HTTPSMSSender {
	cfg := config.AppConfig
	return &HTTPSMSSender{
		client:     &http.Client{Timeout: 10 * time.Second},
		gatewayURL: cfg.SMSGatewayURL,
		apiKey:     cfg.SMSGatewayKey,
		senderID:   cfg.SMSSenderID,
	}
}

func (s *HTTPSMSSender) Send(to, message string) error {
	if s.gatewayURL == "" {
		return fmt.Errorf("sms gateway not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
		"sender":  s.senderID,
	})
	if err != nil {
		return fmt.Errorf("sms payload marshal failed: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.gatewayURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("sms request build failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms send to %s failed: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// FCMPushSender sends push notifications through Firebase Cloud Messaging.
type FCMPushSender struct{}

func NewFCMPushSender() *FCMPushSender {
	return &FCMPushSender{}
}

func (s *FCMPushSender) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		return fmt.Errorf("push channel not initialized")
	}

	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	return nil
}
