package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/venue-events-api/internal/models"
)

type Notifier interface {
	NotifyPublished(event models.SingleEvent) error
	NotifySeriesPublished(series models.RecurringEvent, occurrences int64) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
	loc       *time.Location
}

func NewDiscordNotifier(session *discordgo.Session, channelID string, loc *time.Location) *DiscordNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
		loc:       loc,
	}
}

func (n *DiscordNotifier) NotifyPublished(event models.SingleEvent) error {
	return n.send(n.eventMessage(event))
}

func (n *DiscordNotifier) NotifySeriesPublished(series models.RecurringEvent, occurrences int64) error {
	return n.send(n.seriesMessage(series, occurrences))
}

// eventMessage renders times in the venue's zone.
func (n *DiscordNotifier) eventMessage(event models.SingleEvent) string {
	message := fmt.Sprintf("📅 **Neue Veranstaltung / New event**\n**%s** / %s\n**Wann:** %s – %s",
		event.Title("de"),
		event.Title("en"),
		event.Start.In(n.loc).Format("Mon 02.01.2006 15:04"),
		event.End.In(n.loc).Format("15:04"),
	)
	if event.EventLocation.Name != "" {
		message += fmt.Sprintf("\n**Wo:** %s", event.EventLocation.Name)
	}
	return message
}

func (n *DiscordNotifier) seriesMessage(series models.RecurringEvent, occurrences int64) string {
	return fmt.Sprintf("🔁 **Neue Veranstaltungsreihe / New series**\n**%s** / %s\n**Ab:** %s (%d Termine)",
		series.Title("de"),
		series.Title("en"),
		series.StartFirstOccurrence.In(n.loc).Format("Mon 02.01.2006 15:04"),
		occurrences,
	)
}

func (n *DiscordNotifier) send(message string) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	if _, err := n.session.ChannelMessageSend(n.channelID, message); err != nil {
		return fmt.Errorf("send discord message: %w", err)
	}
	return nil
}
