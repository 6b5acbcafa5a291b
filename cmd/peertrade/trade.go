package main

import (
	"github.com/urfave/cli/v2"
)

var trade = cli.Command{
	Name:   "trade",
	Usage:  "show a single trade",
	Action: tradeAction,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "id",
			Usage:    "the trade id",
			Required: true,
		},
	},
}

func tradeAction(ctx *cli.Context) error {
	resp, err := httpGet("/trades/" + ctx.String("id"))
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
