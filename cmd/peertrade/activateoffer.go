package main

import (
	"github.com/urfave/cli/v2"
)

var activateoffer = cli.Command{
	Name:   "activateoffer",
	Usage:  "bring a deactivated offer back to the market",
	Action: activateOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
	},
}

func activateOfferAction(ctx *cli.Context) error {
	resp, err := httpPost("/offers/"+ctx.String("id")+"/activate", struct{}{})
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
