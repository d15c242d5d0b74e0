// Package notify announces newly created articles to external services.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/newsdesk/newsdesk"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// maxExcerptLength is the number of runes of the article body shown in the message.
const maxExcerptLength = 280

type SlackConfig struct {
	WebhookURL string
	Timeout    time.Duration
}

// Slack posts a message on a Slack incoming webhook for every article created.
type Slack struct {
	webhookURL string
	client     *http.Client
	logger     zerolog.Logger
}

func NewSlack(config SlackConfig, logger zerolog.Logger) *Slack {
	return &Slack{
		webhookURL: config.WebhookURL,
		client:     &http.Client{Timeout: config.Timeout},
		logger:     logger.With().Str("component", "slack").Logger(),
	}
}

// ArticleCreated can be registered with Server.AddArticleHook.
func (s *Slack) ArticleCreated(ctx context.Context, article *newsdesk.Article) error {
	err := slack.PostWebhookCustomHTTPContext(ctx, s.webhookURL, s.client, buildMessage(article))
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}

	s.logger.Debug().Int64("article_id", article.ID).Msg("Article announced")
	return nil
}

func buildMessage(article *newsdesk.Article) *slack.WebhookMessage {
	title := fmt.Sprintf("*%s*\n%s", article.Title, excerpt(article.Body))
	meta := fmt.Sprintf("#%d in %s by %s", article.ID, article.Topic, article.Author)

	return &slack.WebhookMessage{
		Text: fmt.Sprintf("New article: %s", article.Title),
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, title, false, false), nil, nil),
				slack.NewContextBlock("", slack.NewTextBlockObject(slack.PlainTextType, meta, false, false)),
			},
		},
	}
}

func excerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= maxExcerptLength {
		return body
	}
	return string(runes[:maxExcerptLength]) + "..."
}
