package notifications

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

// Topic all dashboard events are mirrored to.
const Topic = "admin-dashboard"

// FCM republishes dashboard events to a Firebase Cloud Messaging topic
// so mobile clients hear about submissions and payouts too. It is
// optional: the server runs without it when no credentials file is
// configured.
type FCM struct {
	client *messaging.Client
}

func NewFCM(ctx context.Context, credentialsFile string) (*FCM, error) {
	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &FCM{client: client}, nil
}

func (f *FCM) Publish(ctx context.Context, event string, data map[string]string) error {
	payload := map[string]string{"event": event}
	for k, v := range data {
		payload[k] = v
	}
	_, err := f.client.Send(ctx, &messaging.Message{
		Topic: Topic,
		Data:  payload,
	})
	return err
}
