package main

import (
	"github.com/urfave/cli/v2"
)

var listoffers = cli.Command{
	Name:   "listoffers",
	Usage:  "list all offers",
	Action: listOffersAction,
}

func listOffersAction(ctx *cli.Context) error {
	resp, err := httpGet("/offers")
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
