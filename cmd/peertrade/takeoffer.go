package main

import (
	"github.com/urfave/cli/v2"
)

var takeoffer = cli.Command{
	Name:   "takeoffer",
	Usage:  "take an offer, creating a trade",
	Action: takeOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the amount to take in satoshis, within the offer's range",
			Required: true,
		},
		&cli.StringFlag{
			Name:     "payment_account",
			Usage:    "the taker's payment account id",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "fee_currency",
			Usage: "the currency the taker fee is paid with: BTC or BSQ",
			Value: "BTC",
		},
		&cli.StringFlag{
			Name:  "peer_address",
			Usage: "the taker's node address",
		},
	},
}

func takeOfferAction(ctx *cli.Context) error {
	resp, err := httpPost(
		"/offers/"+ctx.String("id")+"/take",
		map[string]interface{}{
			"amount":                ctx.Uint64("amount"),
			"takerPaymentAccountId": ctx.String("payment_account"),
			"takerFeeCurrency":      ctx.String("fee_currency"),
			"peerNodeAddress":       ctx.String("peer_address"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
