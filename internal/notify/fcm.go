package notify

import (
	"context"

	"firebase.google.com/go/messaging"
)

// PushSender delivers alerts to the user's mobile devices over FCM.
type PushSender struct {
	Client *messaging.Client
}

func NewPushSender(client *messaging.Client) *PushSender {
	return &PushSender{Client: client}
}

func (s *PushSender) Send(ctx context.Context, token, title, body, link string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"link": link,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	_, err := s.Client.Send(ctx, message)
	return err
}
