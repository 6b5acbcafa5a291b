package main

import (
	"encoding/json"

	"github.com/urfave/cli/v2"
)

var configCmd = cli.Command{
	Name:   "config",
	Usage:  "print or initialize the CLI state",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "init",
			Usage:  "store the daemon address the CLI connects to",
			Action: configInitAction,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "daemon_addr",
					Usage: "the host:port of the peertraded operator interface",
					Value: "localhost:9000",
				},
			},
		},
	},
}

func configAction(ctx *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	buf, _ := json.Marshal(state)
	printRespJSON(buf)
	return nil
}

func configInitAction(ctx *cli.Context) error {
	return setState(map[string]string{
		"daemon_addr": ctx.String("daemon_addr"),
	})
}
