package main

import (
	"github.com/urfave/cli/v2"
)

var createoffer = cli.Command{
	Name:   "createoffer",
	Usage:  "create and publish a new offer",
	Action: createOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "type",
			Usage: "the trade protocol: ESCROW_V1, BSQ_SWAP or ATOMIC",
			Value: "ESCROW_V1",
		},
		&cli.StringFlag{
			Name:     "direction",
			Usage:    "BUY or SELL, from the maker's point of view on BTC",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "base_currency",
			Usage: "the base currency code of the pair",
			Value: "BTC",
		},
		&cli.StringFlag{
			Name:     "counter_currency",
			Usage:    "the counter currency code of the pair",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:     "amount",
			Usage:    "the offer amount in satoshis",
			Required: true,
		},
		&cli.Uint64Flag{
			Name:  "min_amount",
			Usage: "the smallest partial amount a taker may take, in satoshis",
		},
		&cli.StringFlag{
			Name:  "fixed_price",
			Usage: "the fixed price, mutually exclusive with market_price_margin",
		},
		&cli.Float64Flag{
			Name:  "market_price_margin",
			Usage: "the percentage distance from the market price, as a fraction",
		},
		&cli.Int64Flag{
			Name:  "trigger_price",
			Usage: "the scaled price crossing which deactivates the offer",
		},
		&cli.Float64Flag{
			Name:  "buyer_security_deposit_pct",
			Usage: "the buyer's security deposit as a fraction of the amount",
		},
		&cli.StringFlag{
			Name:     "payment_account",
			Usage:    "the maker's payment account id",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "fee_currency",
			Usage: "the currency the maker fee is paid with: BTC or BSQ",
			Value: "BTC",
		},
	},
}

func createOfferAction(ctx *cli.Context) error {
	minAmount := ctx.Uint64("min_amount")
	if minAmount == 0 {
		minAmount = ctx.Uint64("amount")
	}

	resp, err := httpPost("/offers", map[string]interface{}{
		"type":                    ctx.String("type"),
		"direction":               ctx.String("direction"),
		"baseCurrencyCode":        ctx.String("base_currency"),
		"counterCurrencyCode":     ctx.String("counter_currency"),
		"amount":                  ctx.Uint64("amount"),
		"minAmount":               minAmount,
		"useMarketBasedPrice":     ctx.String("fixed_price") == "",
		"marketPriceMargin":       ctx.Float64("market_price_margin"),
		"fixedPrice":              ctx.String("fixed_price"),
		"triggerPrice":            ctx.Int64("trigger_price"),
		"buyerSecurityDepositPct": ctx.Float64("buyer_security_deposit_pct"),
		"paymentAccountId":        ctx.String("payment_account"),
		"makerFeeCurrency":        ctx.String("fee_currency"),
	})
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
