package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pos/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sender delivers a WhatsApp message to a phone number
type Sender interface {
	Send(ctx context.Context, phone, message string) (messageID string, err error)
}

// TwilioWhatsAppSender sends messages through the Twilio Messages API
type TwilioWhatsAppSender struct {
	accountSID string
	authToken  string
	fromNumber string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTwilioWhatsAppSender creates a new Twilio-backed sender
func NewTwilioWhatsAppSender(cfg config.WhatsAppConfig, logger *zap.Logger) *TwilioWhatsAppSender {
	return &TwilioWhatsAppSender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		fromNumber: cfg.FromNumber,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger.Named("whatsapp"),
	}
}

type twilioMessageResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // error message on failure
	Code    int    `json:"code"`
}

// Send posts the message to the Twilio Messages endpoint. The "whatsapp:"
// channel prefix is added to the destination number if missing.
func (s *TwilioWhatsAppSender) Send(ctx context.Context, phone, message string) (string, error) {
	to := phone
	if !strings.HasPrefix(to, "whatsapp:") {
		to = "whatsapp:" + to
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)
	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", to)
	form.Set("Body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build twilio request: %w", err)
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("twilio request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read twilio response: %w", err)
	}

	var parsed twilioMessageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode twilio response: %w", err)
	}

	if resp.StatusCode >= 400 {
		s.logger.Warn("Twilio rejected message",
			zap.Int("status", resp.StatusCode),
			zap.Int("code", parsed.Code),
			zap.String("error", parsed.Message),
		)
		return "", fmt.Errorf("twilio error %d: %s", parsed.Code, parsed.Message)
	}

	s.logger.Info("WhatsApp message sent",
		zap.String("sid", parsed.SID),
		zap.String("status", parsed.Status),
	)
	return parsed.SID, nil
}

// NoopSender logs messages instead of sending them, used when WhatsApp is
// not configured so the rest of the flow still works in development
type NoopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a sender that only logs
func NewNoopSender(logger *zap.Logger) *NoopSender {
	return &NoopSender{logger: logger.Named("whatsapp")}
}

// Send logs the message and reports success without delivering anything
func (s *NoopSender) Send(_ context.Context, phone, message string) (string, error) {
	s.logger.Info("WhatsApp not configured, message not sent",
		zap.String("to", phone),
		zap.String("message", message),
	)
	return "", nil
}

var _ Sender = (*TwilioWhatsAppSender)(nil)
var _ Sender = (*NoopSender)(nil)
