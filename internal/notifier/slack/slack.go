package slack

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
	"github.com/Rogerxyz26/kingsturnier/internal/notifier"
	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = (*Notifier)(nil)

// Notifier posts tournament announcements to a venue Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// StateChanged is a redraw hook for local frontends; nothing to announce.
func (s *Notifier) StateChanged() {}

// MatchResolved announces a finished match.
func (s *Notifier) MatchResolved(rec tournament.MatchRecord, winnerName, loserName string) {
	dur := time.Duration(rec.DurationMs) * time.Millisecond
	text := fmt.Sprintf("🎱 %s beat %s on %s (%s)", winnerName, loserName, rec.TableLabel, fmtDuration(dur))
	s.send(slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil),
	))
}

// TournamentFinalized announces the champion and the final standings.
func (s *Notifier) TournamentFinalized(entry *tournament.ArchiveEntry, standings []tournament.Row) {
	blocks := make([]slack.Block, 0)

	title := entry.Name
	if title == "" {
		title = "Tournament"
	}
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s finished!", title), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) > 0 {
		body := ""
		for i, row := range standings {
			if i >= 10 {
				break
			}
			body += fmt.Sprintf("%d. %s  %d-%d (%d games)\n", i+1, row.Name, row.Wins, row.Losses, row.Games)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", body, true, false), nil, nil))
	}

	s.send(slack.NewBlockMessage(blocks...))
}

func (s *Notifier) send(message slack.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		s.metrics.IncNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return
	}

	s.metrics.IncNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, sec)
}
