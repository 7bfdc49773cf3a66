// Command mlkem is a small front end over the mlkem package: generate key
// pairs, encapsulate a shared secret against a public key, and decapsulate a
// ciphertext with a private key, all in hex or base64.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var log zerolog.Logger

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	app := &cli.App{
		Name:  "mlkem",
		Usage: "module-lattice key encapsulation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "level",
				Usage: "parameter set: 512, 768, or 1024",
				Value: "768",
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "debug, info, warn, error",
				Value: "info",
			},
		},
		Before: func(c *cli.Context) error {
			level, err := zerolog.ParseLevel(c.String("loglevel"))
			if err != nil {
				return err
			}
			log = log.Level(level)
			return nil
		},
		Commands: []*cli.Command{
			keyGenCommand(),
			encapsulateCommand(),
			decapsulateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("mlkem failed")
	}
}
