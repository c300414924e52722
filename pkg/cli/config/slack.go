package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/charter-lab/charterforge/pkg/service/notify"
)

// Slack holds configuration for contract notifications
type Slack struct {
	botToken string
	channel  string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for contract notifications",
			Sources:     cli.EnvVars("CHARTERFORGE_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for contract notifications",
			Sources:     cli.EnvVars("CHARTERFORGE_SLACK_CHANNEL"),
			Destination: &s.channel,
		},
	}
}

// IsConfigured returns true when both token and channel are set
func (s *Slack) IsConfigured() bool {
	return s.botToken != "" && s.channel != ""
}

// Configure creates the notification service. Returns nil when Slack is
// not configured.
func (s *Slack) Configure() (notify.Service, error) {
	if !s.IsConfigured() {
		if s.botToken != "" || s.channel != "" {
			return nil, goerr.New("both slack-bot-token and slack-channel are required for notifications")
		}
		return nil, nil
	}
	return notify.New(s.botToken, s.channel)
}
