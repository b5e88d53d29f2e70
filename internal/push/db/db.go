package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-content/internal/content"
	"ms-content/internal/models"
)

type DB struct {
	Subscribers   *content.Store[models.PushSubscriber]
	Notifications *content.Store[models.PushNotification]
}

func New(bunDB *bun.DB) *DB {
	return &DB{
		Subscribers:   content.NewStore[models.PushSubscriber](bunDB),
		Notifications: content.NewStore[models.PushNotification](bunDB),
	}
}

func (d *DB) SubscriberByEndpoint(ctx context.Context, endpoint string) (*models.PushSubscriber, error) {
	var sub models.PushSubscriber
	err := d.Subscribers.Bun.NewSelect().
		Model(&sub).
		Where("endpoint = ?", endpoint).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, content.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (d *DB) CountActiveSubscribers(ctx context.Context) (int64, error) {
	n, err := d.Subscribers.Bun.NewSelect().
		Model((*models.PushSubscriber)(nil)).
		Where("is_active = ?", true).
		Count(ctx)
	return int64(n), err
}

// DeactivateByEndpoint flips the subscriber off without losing the row; the
// endpoint is the browser's identity and may resubscribe later.
func (d *DB) DeactivateByEndpoint(ctx context.Context, endpoint string) error {
	res, err := d.Subscribers.Bun.NewUpdate().
		Model((*models.PushSubscriber)(nil)).
		Set("is_active = ?", false).
		Where("endpoint = ?", endpoint).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.ErrNotFound
	}
	return nil
}

func (d *DB) Reactivate(ctx context.Context, id string) error {
	_, err := d.Subscribers.Bun.NewUpdate().
		Model((*models.PushSubscriber)(nil)).
		Set("is_active = ?", true).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (d *DB) ListNotifications(ctx context.Context) ([]models.PushNotification, error) {
	var notifications []models.PushNotification
	err := d.Notifications.Bun.NewSelect().
		Model(&notifications).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (d *DB) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	res, err := d.Notifications.Bun.NewUpdate().
		Model((*models.PushNotification)(nil)).
		Set("status = ?", models.NotificationStatusSent).
		Set("sent_at = ?", sentAt).
		Where("id = ?", id).
		Where("status = ?", models.NotificationStatusDraft).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return content.ErrNotFound
	}
	return nil
}
