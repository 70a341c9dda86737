package services

import (
	"context"
	"fmt"
	"log"

	"firebase.google.com/go/messaging"

	"civicdesk/internal/models"
)

type DeviceTokenStore interface {
	SaveToken(ctx context.Context, userID, token string) error
	GetTokensByUserID(ctx context.Context, userID string) ([]string, error)
}

// FCMSender pushes urgent-complaint alerts to the administrator's registered
// devices. Delivery is best-effort: failures are logged, never surfaced to
// the submitting citizen.
type FCMSender struct {
	Client *messaging.Client
	Tokens DeviceTokenStore
}

func (s *FCMSender) SendUrgentAlert(ctx context.Context, c models.Complaint) {
	tokens, err := s.Tokens.GetTokensByUserID(ctx, AdminID)
	if err != nil {
		log.Printf("urgent alert: loading admin device tokens: %v", err)
		return
	}

	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "Urgent complaint",
				Body:  fmt.Sprintf("%s at %s", c.Type, c.Location),
			},
			Data: map[string]string{
				"complaint_id": c.ID,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
		}
		if _, err := s.Client.Send(ctx, message); err != nil {
			log.Printf("urgent alert: send to device failed: %v", err)
		}
	}
}
