package utils

import (
	"errors"
	"os"
	"time"

	resty "github.com/go-resty/resty/v2"
)

const (
	AlertNotification = 0
	InfoNotification  = 1
)

type slackRequestBody struct {
	Text string `json:"text"`
}

// SendSlackNotification will post to an 'Incoming Webhook' url setup in
// Slack Apps. It accepts some text and the slack channel is saved within
// Slack. Notifications are best-effort: an unset webhook disables them.
func SendSlackNotification(msg string, notiType int) error {
	var webhookURL string
	if notiType == AlertNotification {
		webhookURL = os.Getenv("ALERT_WEBHOOK_URL")
	} else if notiType == InfoNotification {
		webhookURL = os.Getenv("INFO_WEBHOOK_URL")
	} else {
		return errors.New("notification type is not supported")
	}
	if webhookURL == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)
	response, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(slackRequestBody{Text: msg}).
		Post(webhookURL)
	if err != nil {
		return err
	}
	if response.String() != "ok" {
		return errors.New("non-ok response returned from Slack")
	}
	return nil
}
