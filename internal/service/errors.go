package service

import "errors"

var (
	ErrNameRequired         = errors.New("name is required")
	ErrWebhookNotConfigured = errors.New("SLACK_WEBHOOK_URL not configured")
)
