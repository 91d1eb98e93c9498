package utils

import (
	"context"
	"log"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM initializes the Firebase Cloud Messaging client. Push delivery
// is optional: without a credentials file the server runs with push
// disabled and SendPush becomes a no-op.
func InitFCM(credentialsFile string) {
	if credentialsFile == "" {
		log.Println("FCM disabled: no credentials file configured")
		return
	}

	opt := option.WithCredentialsFile(credentialsFile)
	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		log.Printf("FCM disabled: error initializing firebase app: %v", err)
		return
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		log.Printf("FCM disabled: error getting messaging client: %v", err)
		return
	}

	fcmClient = client
	log.Println("Firebase Cloud Messaging ready")
}

// SendPush sends a push message to one device token. Best effort: a stored
// notification row is the durable copy, so failures here are only logged.
func SendPush(token string, title string, body string, data map[string]string) error {
	if fcmClient == nil || token == "" {
		return nil
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := fcmClient.Send(context.Background(), message); err != nil {
		log.Printf("Error sending push message: %s", err)
		return err
	}
	return nil
}
