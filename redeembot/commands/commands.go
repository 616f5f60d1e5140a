package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/topheroes-tools/redeembot/redeembot/commands/accounts"
	"github.com/topheroes-tools/redeembot/redeembot/commands/redeem"
	"github.com/topheroes-tools/redeembot/redeembot/commands/schedule"
	"github.com/topheroes-tools/redeembot/redeembot/commands/system"
)

var Commands = []discord.ApplicationCommandCreate{}

func init() {
	Commands = append(Commands, accounts.Commands...)
	Commands = append(Commands, redeem.Commands...)
	Commands = append(Commands, schedule.Commands...)
	Commands = append(Commands, system.Commands...)
}
