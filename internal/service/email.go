package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"smartasset-backend/internal/domain"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendRequestSubmitted(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error {
	subject := fmt.Sprintf("New borrow request for %s", req.AssetID)
	body := fmt.Sprintf(
		"%s requested asset %s from %s to %s.\n\nReason: %s\n",
		domain.ShortName(req.RequestedBy), req.AssetID, req.StartDate, req.EndDate, req.Reason)
	return s.send(adminEmail, "Admin", subject, body)
}

func (s *emailService) SendRequestDecision(ctx context.Context, toEmail string, req *domain.BorrowRequest) error {
	subject := fmt.Sprintf("Your borrow request for %s: %s", req.AssetID, req.Status)
	body := fmt.Sprintf("Your request for asset %s (%s to %s) is now %s.\n",
		req.AssetID, req.StartDate, req.EndDate, req.Status)
	if req.Status == domain.RequestStatusRejected && req.AdminNote != "" {
		body += fmt.Sprintf("\nReason: %s\n", req.AdminNote)
	}
	return s.send(toEmail, domain.ShortName(toEmail), subject, body)
}

func (s *emailService) SendGeofenceAlert(ctx context.Context, adminEmail, deviceName string, distanceMeters float64) error {
	subject := fmt.Sprintf("Geofence alert: %s", deviceName)
	body := fmt.Sprintf("%s is reporting from outside the geofence (%.0f m from center).\n",
		deviceName, distanceMeters)
	return s.send(adminEmail, "Admin", subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error {
	subject := fmt.Sprintf("Overdue loan: %s", req.AssetID)
	body := fmt.Sprintf("Asset %s was due back on %s and has not been marked returned. Borrowed by %s.\n",
		req.AssetID, req.EndDate, domain.ShortName(req.RequestedBy))
	return s.send(adminEmail, "Admin", subject, body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
