package system

import (
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/topheroes-tools/redeembot/redeembot"
	"github.com/topheroes-tools/redeembot/redeembot/analytics"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

const recentWindow = 100

var Stats = discord.SlashCommandCreate{
	Name:        "stats",
	Description: "Show redemption and check-in statistics",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "user-id",
			Description:  "Only show statistics for this user ID",
			Required:     false,
			Autocomplete: true,
		},
	},
}

func StatsSummary(s analytics.Stats) string {
	return fmt.Sprintf("Total: **%d** • Successful: **%d** • Failed: **%d**\nSuccess rate: **%s%%**\nCodes: **%d** • Users: **%d**",
		s.Total, s.Successful, s.Failed, s.SuccessRate(), s.UniqueCodes, s.UniqueUsers)
}

func RecordLine(r redeemer.OutcomeRecord) string {
	mark := "✅"
	if !r.Succeeded {
		mark = "❌"
	}
	line := fmt.Sprintf("%s <t:%d:t> `%s` %s `%s`", mark, r.Timestamp.Unix(), r.AccountID, r.Kind, r.Target)
	if !r.Succeeded && r.Reason != "" {
		line += " - " + r.Reason
	}
	return line
}

func StatsHandler(b *redeembot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		accountID := strings.TrimSpace(e.SlashCommandInteractionData().String("user-id"))

		if accountID != "" {
			embed := discord.NewEmbedBuilder().
				SetTitle(fmt.Sprintf("📊 Stats for `%s`", accountID)).
				SetDescription(StatsSummary(b.Analytics.UserStats(accountID))).
				SetColor(utils.InfoColor).
				Build()
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{embed},
				Flags:  discord.MessageFlagEphemeral,
			})
		}

		summary := StatsSummary(b.Analytics.Stats())
		recent := b.Analytics.Recent(recentWindow)
		totalPages := utils.Pages(len(recent), utils.RecentPerPage)

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start, end := utils.PageBounds(page, utils.RecentPerPage, len(recent))

				var description strings.Builder
				description.WriteString(summary)
				description.WriteString("\n\n**Recent**\n")
				if start == end {
					description.WriteString("Nothing yet")
				}
				for _, r := range recent[start:end] {
					description.WriteString(RecordLine(r) + "\n")
				}

				embed.
					SetTitle("📊 Redemption Stats").
					SetDescription(description.String()).
					SetColor(utils.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
	}
}
