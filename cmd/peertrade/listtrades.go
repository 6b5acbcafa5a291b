package main

import (
	"github.com/urfave/cli/v2"
)

var listtrades = cli.Command{
	Name:   "listtrades",
	Usage:  "list all trades",
	Action: listTradesAction,
}

func listTradesAction(ctx *cli.Context) error {
	resp, err := httpGet("/trades")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
