package main

import (
	"github.com/urfave/cli/v2"
)

var deactivateoffer = cli.Command{
	Name:   "deactivateoffer",
	Usage:  "withdraw an offer from the market without canceling it",
	Action: deactivateOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
	},
}

func deactivateOfferAction(ctx *cli.Context) error {
	resp, err := httpPost("/offers/"+ctx.String("id")+"/deactivate", struct{}{})
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
