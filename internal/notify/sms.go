// Package notify sends alert texts via Twilio SMS.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/nonobot/nono-alert/internal/nohitter"
)

// SMSSender implements nohitter.Notifier over the Twilio REST API.
type SMSSender struct {
	client *twilio.RestClient
	from   string
	to     string
	logger *slog.Logger
}

// NewSMSSender creates a Twilio SMS sender. Returns nil when the account
// SID is empty (texting disabled); the engine logs detections instead.
func NewSMSSender(accountSID, authToken, from, to string, logger *slog.Logger) *SMSSender {
	if accountSID == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	client.Client.SetTimeout(15 * time.Second)
	return &SMSSender{client: client, from: from, to: to, logger: logger}
}

// Send texts the body to the configured personal number and returns the
// Twilio message SID. The Twilio SDK carries no context; the client-level
// timeout set at construction bounds the call instead.
func (s *SMSSender) Send(ctx context.Context, body string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &nohitter.DeliveryError{Err: err}
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(s.to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return "", &nohitter.DeliveryError{Err: err}
	}

	sid := ""
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	s.logger.Info("SMS accepted by Twilio", "sid", sid)
	return sid, nil
}

// String identifies the sender in startup logs without leaking numbers.
func (s *SMSSender) String() string {
	return fmt.Sprintf("twilio sms from %s", mask(s.from))
}

func mask(number string) string {
	if len(number) <= 4 {
		return "****"
	}
	return "****" + number[len(number)-4:]
}
