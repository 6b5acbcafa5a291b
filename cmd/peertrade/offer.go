package main

import (
	"github.com/urfave/cli/v2"
)

var offer = cli.Command{
	Name:   "offer",
	Usage:  "show a single offer",
	Action: offerAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the offer id",
			Required: true,
		},
	},
}

func offerAction(ctx *cli.Context) error {
	resp, err := httpGet("/offers/" + ctx.String("id"))
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
