package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "kzg-ceremony",
		Usage:     "coordinate a KZG powers of tau ceremony over BLS12-381",
		UsageText: "kzg-ceremony command [arguments...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a YAML configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:        "init",
				Aliases:     []string{"i"},
				Usage:       "init <output>",
				Description: "write the genesis contribution file where every power is the generator",
				Action:      initialize,
			},
			{
				Name:        "contribute",
				Aliases:     []string{"c"},
				Usage:       "contribute <input> <output>",
				Description: "fold a fresh secret into every sub-ceremony of a contribution file",
				Action:      contribute,
			},
			{
				Name:        "verify",
				Aliases:     []string{"v"},
				Usage:       "verify <contribution> [previous]",
				Description: "verify a contribution file against its predecessor, or against genesis",
				Action:      verify,
			},
			{
				Name:        "export",
				Aliases:     []string{"e"},
				Usage:       "export <input> <output>",
				Description: "export one sub-ceremony as a gnark-crypto KZG SRS",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "part",
						Usage: "index of the sub-ceremony to export",
					},
					&cli.BoolFlag{
						Name:  "lagrange",
						Usage: "convert the G1 powers to Lagrange basis",
					},
				},
				Action: export,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
