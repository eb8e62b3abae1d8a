package notify

import (
	"context"
	"time"

	bk "github.com/hanksha/pitch-booking-bot/booking"
	"github.com/hanksha/pitch-booking-bot/discord"
)

// DiscordNotifier posts a rich embed for each booking to the staff channel.
type DiscordNotifier struct {
	client    MessageSender
	channelID string
}

func NewDiscordNotifier(client MessageSender, channelID string) *DiscordNotifier {
	return &DiscordNotifier{client: client, channelID: channelID}
}

func (n *DiscordNotifier) Name() string {
	return "discord"
}

func (n *DiscordNotifier) Receive(ctx context.Context, event bk.Event) error {
	return n.client.SendMessage(ctx, n.channelID, discord.Message{
		Embeds: []discord.Embed{bookingEmbed(n.channelID, event)},
	})
}

func bookingEmbed(channelID string, event bk.Event) discord.Embed {
	requester := event.RequesterName

	if len(requester) == 0 {
		requester = event.RequesterID
	}

	phone := "Unknown"

	if len(event.Phone) != 0 {
		phone = event.Phone
	}

	embed := discord.Embed{
		Type:      "rich",
		ChannelID: channelID,
		Title:     "New booking",
		Fields: []discord.EmbedField{
			{
				Name:   "Requester",
				Value:  requester,
				Inline: true,
			},
			{
				Name:   "Phone",
				Value:  phone,
				Inline: true,
			},
			{
				Name:   "Pitch",
				Value:  event.ResourceName,
				Inline: true,
			},
			{
				Name:   "Location",
				Value:  event.Location,
				Inline: true,
			},
			{
				Name:   "Time slot",
				Value:  event.TimeSlot,
				Inline: true,
			},
		},
	}

	if !event.CreatedAt.IsZero() {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name:   "Booked at",
			Value:  event.CreatedAt.UTC().Format(time.DateTime),
			Inline: true,
		})
	}

	return embed
}
