package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"duekeeper/deadline"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
)

// TopicSink delivers deadline alerts to the devices subscribed to one FCM
// topic. Delivery is fire and forget; the caller decides what a failure
// means.
type TopicSink struct {
	client *messaging.Client
	topic  string
}

func NewTopicSink(ctx context.Context, app *firebase.App, topic string) (*TopicSink, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &TopicSink{client: client, topic: topic}, nil
}

func (s *TopicSink) Notify(ctx context.Context, taskID int, title, body string, tier deadline.Tier) error {
	message := &messaging.Message{
		Data: map[string]string{
			"payload": "notification",
			"task_id": strconv.Itoa(taskID),
			"urgency": tier.String(),
		},
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Topic: s.topic,
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("error sending message: %w", err)
	}
	log.Printf("Successfully sent message: %s", response)
	return nil
}
