package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var canceloffer = cli.Command{
	Name:   "canceloffer",
	Usage:  "cancel an offer, releasing its reserved funds",
	Action: cancelOfferAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
	},
}

func cancelOfferAction(ctx *cli.Context) error {
	if _, err := httpPost(
		"/offers/"+ctx.String("id")+"/cancel", struct{}{},
	); err != nil {
		return err
	}

	fmt.Println("offer canceled")
	return nil
}
