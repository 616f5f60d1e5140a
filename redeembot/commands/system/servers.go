package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/topheroes-tools/redeembot/redeembot"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var Servers = discord.SlashCommandCreate{
	Name:        "servers",
	Description: "List all servers (guilds) the bot has joined",
}

type GuildInfo struct {
	ID          snowflake.ID
	Name        string
	MemberCount int
}

func ServerLines(guilds []GuildInfo) []string {
	lines := make([]string, len(guilds))
	for i, g := range guilds {
		lines[i] = fmt.Sprintf("%d. **%s** (ID: `%s`) - %d members", i+1, g.Name, g.ID, g.MemberCount)
	}
	return lines
}

// ServersHeader is shared by the inline reply and the DM.
func ServersHeader(total int, full bool) string {
	if full {
		return fmt.Sprintf("🌎 **Full Server List (%d Total):**", total)
	}
	return fmt.Sprintf("🌎 **Servers I'm In (%d Total):**", total)
}

// InlineServers is the reply shown in the channel. Past the inline limit it
// reports how many servers only went to DM.
func InlineServers(lines []string) string {
	total := len(lines)
	if total == 0 {
		return "I'm not currently in any servers! 😭"
	}

	shown := lines[:min(total, utils.ServersInline)]
	content := ServersHeader(total, false) + "\n" + strings.Join(shown, "\n")
	if total > utils.ServersInline {
		content += fmt.Sprintf("\n... and **%d** more! Sending the full list in DM. 🤫", total-utils.ServersInline)
	}
	return content
}

func cachedGuilds(b *redeembot.Bot) []GuildInfo {
	var guilds []GuildInfo
	b.Client.Caches().GuildsForEach(func(g discord.Guild) {
		guilds = append(guilds, GuildInfo{ID: g.ID, Name: g.Name, MemberCount: g.MemberCount})
	})
	return guilds
}

func ServersHandler(b *redeembot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		lines := ServerLines(cachedGuilds(b))
		if len(lines) <= utils.ServersInline {
			return utils.EH.CreateEphemeralContent(e, InlineServers(lines))
		}

		totalPages := utils.Pages(len(lines), utils.ServersInline)
		err := b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start, end := utils.PageBounds(page, utils.ServersInline, len(lines))
				embed.
					SetTitle(ServersHeader(len(lines), false)).
					SetDescription(strings.Join(lines[start:end], "\n")).
					SetColor(utils.EmbedColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Full list sent by DM", page+1, totalPages), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, true)
		if err != nil {
			return err
		}

		for _, content := range utils.ChunkMessages(ServersHeader(len(lines), true), lines, utils.MaxMessageLength) {
			if err := b.SendDM(e.User().ID, discord.MessageCreate{Content: content}); err != nil {
				slog.Warn("Failed to DM server list",
					slog.String("type", "cmd"),
					slog.String("user_id", e.User().ID.String()),
					slog.Any("error", err),
				)
				break
			}
		}
		return nil
	}
}
