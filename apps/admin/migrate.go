package main

import (
	"github.com/Nebras-project/nebras-dashboard/storage/database"
)

var migrateFunc = database.Migrate // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDatabase
	}
	if err := migrateFunc(cli.db, args[0], args[1:]...); err != nil {
		return err
	}
	cli.logger.Info("migrate " + args[0] + ": done")
	return nil
}
