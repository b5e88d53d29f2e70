package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-content/internal/models"
)

// Lifecycle event actions streamed to downstream consumers (push sender,
// sitemap builder, cache warmers).
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionDeleted   = "deleted"
	ActionDispatch  = "dispatch"
	ActionReordered = "reordered"
)

// ContentEvent is the envelope for every content lifecycle message.
type ContentEvent struct {
	Action string    `json:"action"`
	Entity string    `json:"entity"`
	ID     string    `json:"id"`
	Slug   string    `json:"slug,omitempty"`
	Title  string    `json:"title,omitempty"`
	At     time.Time `json:"at"`
}

type Producer struct {
	Writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.LeastBytes{},
	}
	return &Producer{Writer: writer}
}

// Publish writes one message to the given topic.
func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
	})
}

func (p *Producer) publishEvent(topic string, event ContentEvent) error {
	event.At = time.Now()
	msgBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fmt.Printf("Publishing to Kafka [%s/%s.%s]: %s\n", topic, event.Entity, event.Action, string(msgBytes))
	return p.Publish(topic, event.ID, msgBytes)
}

// PublishBonusEvent streams a bonus lifecycle change.
func (p *Producer) PublishBonusEvent(topic, action string, bonus models.Bonus) error {
	return p.publishEvent(topic, ContentEvent{
		Action: action,
		Entity: "bonus",
		ID:     bonus.ID,
		Slug:   bonus.Slug,
		Title:  bonus.Title,
	})
}

// PublishCampaignEvent streams a campaign lifecycle change.
func (p *Producer) PublishCampaignEvent(topic, action string, campaign models.Campaign) error {
	return p.publishEvent(topic, ContentEvent{
		Action: action,
		Entity: "campaign",
		ID:     campaign.ID,
		Slug:   campaign.Slug,
		Title:  campaign.Title,
	})
}

// PublishReviewEvent streams a review moderation change.
func (p *Producer) PublishReviewEvent(topic, action string, review models.SiteReview) error {
	return p.publishEvent(topic, ContentEvent{
		Action: action,
		Entity: "review",
		ID:     review.ID,
	})
}

// PublishNotification hands a composed push notification to the external
// sender via the dispatch topic.
func (p *Producer) PublishNotification(topic string, notification models.PushNotification) error {
	msgBytes, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	fmt.Printf("Publishing to Kafka [%s]: %s\n", topic, string(msgBytes))
	return p.Publish(topic, notification.ID, msgBytes)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
