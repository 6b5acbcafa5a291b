package main

import (
	"github.com/urfave/cli/v2"
)

var tradeevent = cli.Command{
	Name:   "tradeevent",
	Usage:  "apply a protocol event to a trade",
	Action: tradeEventAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the trade id",
			Required: true,
		},
		&cli.StringFlag{
			Name: "event",
			Usage: "one of depositPublished, depositConfirmed, paymentSent, " +
				"paymentReceived, payoutPublished, complete, withdraw, cancel, " +
				"openDispute, closeDispute, swapTxPublished, swapTxConfirmed, " +
				"failSwap",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "txid",
			Usage: "the transaction id, for events recording one",
		},
		&cli.BoolFlag{
			Name:  "refund",
			Usage: "close a dispute by refunding the deposits instead of paying out",
		},
		&cli.StringFlag{
			Name:  "reason",
			Usage: "the failure reason, for failSwap",
		},
	},
}

func tradeEventAction(ctx *cli.Context) error {
	resp, err := httpPost(
		"/trades/"+ctx.String("id")+"/events",
		map[string]interface{}{
			"event":  ctx.String("event"),
			"txId":   ctx.String("txid"),
			"refund": ctx.Bool("refund"),
			"reason": ctx.String("reason"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
