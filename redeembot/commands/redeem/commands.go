package redeem

import (
	"context"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/topheroes-tools/redeembot/redeembot/redeemer"
)

var Commands = []discord.ApplicationCommandCreate{
	Redeem,
	RedeemBulk,
}

const (
	codeOption    = "code"
	accountOption = "user-id"
)

type SingleRedeemer interface {
	RedeemSingle(ctx context.Context, accountID, giftCode string) bool
}

type BatchRunner interface {
	RunBatch(ctx context.Context, accountIDs []string, op redeemer.Operation) ([]string, error)
}

type AccountLister interface {
	List(ctx context.Context) ([]string, error)
}

func normalizeCode(code string) string {
	return strings.TrimSpace(code)
}
