package push

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-content/internal/content"
	"ms-content/internal/models"
	"ms-content/internal/push/db"
)

// Dispatcher hands a composed notification to the external sender. In
// production this is the Kafka producer; tests swap in a recorder.
type Dispatcher interface {
	PublishNotification(topic string, notification models.PushNotification) error
}

type Service struct {
	DB            *db.DB
	Dispatch      Dispatcher
	DispatchTopic string
}

func NewService(d *db.DB, dispatch Dispatcher, topic string) *Service {
	return &Service{DB: d, Dispatch: dispatch, DispatchTopic: topic}
}

// Subscribe registers a browser push endpoint. Re-subscribing an endpoint
// that opted out earlier reactivates it instead of failing on the unique
// constraint.
func (s *Service) Subscribe(ctx context.Context, req models.SubscribeRequest) (*models.PushSubscriber, error) {
	if !strings.HasPrefix(req.Endpoint, "https://") {
		return nil, fmt.Errorf("%w: endpoint must be an https URL", content.ErrValidation)
	}

	existing, err := s.DB.SubscriberByEndpoint(ctx, req.Endpoint)
	if err == nil {
		if !existing.IsActive {
			if err := s.DB.Reactivate(ctx, existing.ID); err != nil {
				return nil, err
			}
			existing.IsActive = true
		}
		return existing, nil
	}
	if !errors.Is(err, content.ErrNotFound) {
		return nil, err
	}

	sub := &models.PushSubscriber{
		ID:        uuid.New().String(),
		Endpoint:  req.Endpoint,
		P256dh:    req.P256dh,
		Auth:      req.Auth,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Subscribers.Insert(ctx, sub); err != nil {
		return nil, fmt.Errorf("failed to register subscriber: %w", err)
	}
	return sub, nil
}

func (s *Service) Unsubscribe(ctx context.Context, endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: endpoint is required", content.ErrValidation)
	}
	return s.DB.DeactivateByEndpoint(ctx, endpoint)
}

func (s *Service) SubscriberCount(ctx context.Context) (int64, error) {
	return s.DB.CountActiveSubscribers(ctx)
}

func (s *Service) ListNotifications(ctx context.Context) ([]models.PushNotification, error) {
	return s.DB.ListNotifications(ctx)
}

// Compose stores a draft notification.
func (s *Service) Compose(ctx context.Context, req models.NotificationComposeRequest) (*models.PushNotification, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("%w: title is required", content.ErrValidation)
	}

	notification := &models.PushNotification{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Body:      req.Body,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		Status:    models.NotificationStatusDraft,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Notifications.Insert(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}
	return notification, nil
}

// Send marks the draft sent and streams it to the dispatch topic. The status
// flip happens first with a draft-only guard, so a double send is a no-op on
// the second call.
func (s *Service) Send(ctx context.Context, id string) (*models.PushNotification, error) {
	notification, err := s.DB.Notifications.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if notification.Status == models.NotificationStatusSent {
		return nil, fmt.Errorf("%w: notification already sent", content.ErrValidation)
	}

	now := time.Now()
	if err := s.DB.MarkSent(ctx, id, now); err != nil {
		return nil, err
	}
	notification.Status = models.NotificationStatusSent
	notification.SentAt = &now

	if err := s.Dispatch.PublishNotification(s.DispatchTopic, *notification); err != nil {
		fmt.Printf("Kafka publish error (push dispatch): %v\n", err)
	}
	return notification, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.DB.Notifications.Delete(ctx, id)
}
