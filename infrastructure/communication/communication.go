package communication

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"teamop.dk/bosted/notification"
)

type Slack struct {
	client  *slack.Client
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
	// APIURL overrides the Slack API root, e.g. for tests.
	APIURL string
}

func NewSlack(token string, options SlackOption) *Slack {
	var opts []slack.Option
	if options.APIURL != "" {
		opts = append(opts, slack.OptionAPIURL(options.APIURL))
	}
	return &Slack{client: slack.New(token, opts...), options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID string, options ...slack.MsgOption) error {
	if channelID == "" {
		return fmt.Errorf("slack channel not configured")
	}
	_, _, err := s.client.PostMessageContext(ctx, channelID, options...)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (this *Slack) Info(ctx context.Context, message string) error {
	return this.postMessage(ctx, this.options.InfoChannelID, slack.MsgOptionText(message, false))
}

func (this *Slack) Error(ctx context.Context, message string) error {
	return this.postMessage(ctx, this.options.ErrorChannelID, slack.MsgOptionText(message, false))
}

// Notify posts a reminder to the info channel with the title in bold.
func (this *Slack) Notify(ctx context.Context, payload notification.Payload) error {
	text := fmt.Sprintf("*%s*\n%s", payload.Title, payload.Body)
	return this.postMessage(ctx, this.options.InfoChannelID, slack.MsgOptionText(text, false))
}

var _ notification.Notifier = (*Slack)(nil)
