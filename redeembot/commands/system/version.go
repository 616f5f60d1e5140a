package system

import (
	"fmt"
	"runtime"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/topheroes-tools/redeembot/redeembot"
	"github.com/topheroes-tools/redeembot/redeembot/utils"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show bot version and build info",
}

func VersionInfo(version, commit, buildTime string) string {
	return fmt.Sprintf("🤖 **Bot Version Info**\nVersion: `%s`\nGit Tag: `%s`\nBuild: `%s`\nGo: `%s`",
		version, commit, buildTime, runtime.Version())
}

func VersionHandler(b *redeembot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.CreateEphemeralContent(e, VersionInfo(b.Version, b.Commit, b.BuildTime))
	}
}
