package services

import (
	"fmt"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/resend/resend-go/v2"
)

// EmailService sends transactional mail through the Resend API. When no
// API key is configured it is disabled and sends become no-ops, which
// keeps local development working without credentials.
type EmailService struct {
	Client    *resend.Client
	From      string
	Enabled   bool
	RequestID string
}

func NewEmailService(apiKey, from string) EmailService {
	svc := EmailService{From: from, Enabled: apiKey != ""}
	if svc.Enabled {
		svc.Client = resend.NewClient(apiKey)
	}
	return svc
}

// SendVerification delivers the email verification link.
func (s EmailService) SendVerification(to, link string) error {
	subject := "ITI Email Verification"
	body := fmt.Sprintf("Welcome to ITI! Please verify your email by clicking on the following link: %s", link)
	return s.send(to, subject, body)
}

func (s EmailService) send(to, subject, text string) error {
	if !s.Enabled {
		utils.LogEvent(s.RequestID, "email", "skipped", "email disabled, no RESEND_API_KEY")
		return nil
	}

	sent, err := s.Client.Emails.Send(&resend.SendEmailRequest{
		From:    s.From,
		To:      []string{to},
		Subject: subject,
		Text:    text,
	})
	if err != nil {
		utils.LogEvent(s.RequestID, "email", "send_failed", err.Error())
		return domain.InternalError{Msg: "Failed to send email verification.", Err: err}
	}

	utils.LogEvent(s.RequestID, "email", "sent", "email_id="+sent.Id)
	return nil
}
