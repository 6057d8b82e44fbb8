package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/apps/api/di"
	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/storage/database"
	inmemdb "github.com/Nebras-project/nebras-dashboard/storage/database/inmem"
	sqlxrepos "github.com/Nebras-project/nebras-dashboard/storage/database/sqlx"
)

func main() {
	if err := start(os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			fmt.Fprintf(os.Stderr, "\nerror: %v\n", err)
		}
		os.Exit(1)
	}
}

func start(args []string) error {
	conf := core.NewConfig()
	logger := di.NewLogger(conf, "ADMIN : ")
	defer logger.Close()

	cli := newCommandLine(conf, logger, os.Stdout)

	// set up DB
	if conf.Database.InMemory {
		logger.Warn("using the in-memory database: changes are lost on exit")
		cli.usrRepo = inmemdb.NewUserRepository(inmemdb.Open())
	} else {
		db, err := database.Open(conf)
		if err != nil {
			return errors.Wrap(err, "opening database")
		}
		defer db.Close()
		cli.db = db.DB
		cli.usrRepo = sqlxrepos.NewUserRepository(db)
	}

	return cli.run(args)
}
