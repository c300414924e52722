package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/charter-lab/charterforge/pkg/domain/model"
)

// Service posts contract lifecycle notifications. Implementations must
// tolerate being called on a best-effort basis: callers log failures but
// never fail contract generation over them.
type Service interface {
	// NotifyContractGenerated announces a newly generated contract
	NotifyContractGenerated(ctx context.Context, doc *model.ContractDocument) error
}

// client implements Service against the Slack Web API
type client struct {
	api     *slack.Client
	channel string
}

// New creates a Slack notification service posting to the given channel
func New(token, channel string) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return &client{
		api:     slack.New(token),
		channel: channel,
	}, nil
}

func (c *client) NotifyContractGenerated(ctx context.Context, doc *model.ContractDocument) error {
	blocks := buildContractBlocks(doc)
	fallback := fmt.Sprintf("Charter contract %s generated for %s", doc.ID, doc.Vessel.Name)

	_, _, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(fallback, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post contract notification",
			goerr.V("channel", c.channel),
			goerr.V("contract_id", doc.ID),
		)
	}

	return nil
}

func buildContractBlocks(doc *model.ContractDocument) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, "Charter Contract Generated", true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, "*Contract:*\n"+doc.ID.String(), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, "*Vessel:*\n"+doc.Vessel.Name, false, false),
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Period:*\n%s - %s (%d days)",
					doc.Charter.StartDate.Format("2006-01-02"),
					doc.Charter.EndDate.Format("2006-01-02"),
					doc.Charter.DurationDays),
				false, false),
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Total Value:*\n%s %.0f", doc.Charter.Currency, doc.TotalValue),
				false, false),
		}, nil),
	}

	if doc.Assessment != nil {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("*Risk:* %.2f (%s)", doc.Assessment.OverallScore, doc.Assessment.Level),
				false, false),
			nil, nil,
		))
	}

	return blocks
}
