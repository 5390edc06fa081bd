package main

import (
	"os"

	"github.com/robinjoseph08/golib/logger"
	"github.com/shelfwise/shelfwise/pkg/config"
	"github.com/shelfwise/shelfwise/pkg/database"
	"github.com/shelfwise/shelfwise/pkg/migrations"
	"github.com/shelfwise/shelfwise/pkg/seed"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}

	app := &cli.App{
		Name:        "seed",
		Usage:       "import admin, book, and ledger definitions from a JSON file",
		Description: "Imports are idempotent; entries already present are skipped.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "path to the seed JSON file",
				Value: cfg.SeedFilePath,
			},
		},
		Action: func(c *cli.Context) error {
			path := c.String("file")
			if path == "" {
				return cli.Exit("no seed file given; pass --file or set SHELFWISE_SEED_FILE_PATH", 1)
			}

			if _, err := migrations.BringUpToDate(c.Context, db); err != nil {
				return err
			}

			file, err := seed.Load(path)
			if err != nil {
				return err
			}

			svc := seed.NewService(db)
			res, err := svc.Apply(c.Context, file)
			if err != nil {
				return err
			}

			log.Info("seed applied", logger.Data{
				"admins_created":       res.AdminsCreated,
				"books_created":        res.BooksCreated,
				"transactions_created": res.TransactionsCreated,
				"skipped":              res.Skipped,
			})
			return nil
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("app run error")
	}
}
