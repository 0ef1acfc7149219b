package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pkordes/trip-planner/internal/domain"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or upgrade the local store schema and exit.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			_, closeStore, err := openStore(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeStore()
			logger.Info("store schema up to date", "driver", cfg.StoreDriver)
			return nil
		},
	}
}

func currentTripCommand() *cli.Command {
	return &cli.Command{
		Name:  "current-trip",
		Usage: "Print the id of the trip remembered on this device.",
		Action: func(c *cli.Context) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			id, err := store.Get(c.Context)
			if errors.Is(err, domain.ErrNotFound) {
				return cli.Exit("no trip saved on this device", 2)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, id)
			return err
		},
	}
}

func forgetTripCommand() *cli.Command {
	return &cli.Command{
		Name:  "forget-trip",
		Usage: "Forget the trip remembered on this device.",
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			store, closeStore, err := openStore(c.Context, cfg)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Delete(c.Context); err != nil {
				return err
			}
			logger.Info("current trip forgotten")
			return nil
		},
	}
}
