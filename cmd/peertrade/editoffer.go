package main

import (
	"github.com/urfave/cli/v2"
)

var editoffer = cli.Command{
	Name:   "editoffer",
	Usage:  "edit the price, trigger or activation state of an offer",
	Action: editOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "fixed_price",
			Usage: "the new fixed price",
		},
		&cli.Float64Flag{
			Name:  "market_price_margin",
			Usage: "the new percentage distance from the market price",
		},
		&cli.Int64Flag{
			Name:  "trigger_price",
			Usage: "the new trigger price",
		},
		&cli.BoolFlag{
			Name:  "activate",
			Usage: "the new activation state",
		},
		&cli.StringSliceFlag{
			Name: "field",
			Usage: "a field to edit: fixedPrice, marketPriceMargin, " +
				"triggerPrice or activationState. Repeatable",
			Required: true,
		},
	},
}

func editOfferAction(ctx *cli.Context) error {
	resp, err := httpPost(
		"/offers/"+ctx.String("id")+"/edit",
		map[string]interface{}{
			"fixedPrice":        ctx.String("fixed_price"),
			"marketPriceMargin": ctx.Float64("market_price_margin"),
			"triggerPrice":      ctx.Int64("trigger_price"),
			"activate":          ctx.Bool("activate"),
			"editedFields":      ctx.StringSlice("field"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
