package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/dashboard"
)

// Export formats
const (
	formatCSV  = "csv"
	formatXLSX = "xlsx"
)

type exportOptions struct {
	entity   string
	format   string
	out      string
	query    string
	apiURL   string
	username string
	password string
	lang     string
}

func exportEntities() []string {
	return dashboard.EntityNames()
}

func (opts exportOptions) resolveFormat() (string, error) {
	format := strings.ToLower(opts.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.out)), ".")
	}
	switch format {
	case "", formatCSV:
		return formatCSV, nil
	case formatXLSX:
		return formatXLSX, nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

// export logs in to the API, walks every page of the entity list and writes it as csv or xlsx.
func (cli *commandLine) export(opts exportOptions) error {
	entity, ok := dashboard.LookupEntity(opts.entity)
	if !ok {
		return fmt.Errorf("unknown entity %q, want one of: %s", opts.entity, strings.Join(exportEntities(), ", "))
	}
	format, err := opts.resolveFormat()
	if err != nil {
		return err
	}
	lang := opts.lang
	if !core.IsSupportedLanguage(lang) {
		lang = core.LangEnglish
	}

	ctx := context.Background()
	client := dashboard.NewClient(opts.apiURL, dashboard.WithLanguage(lang))
	if _, err = client.Login(ctx, opts.username, opts.password); err != nil {
		return err
	}
	rows, err := client.Resource(entity.Resource).ListAll(ctx, opts.query)
	if err != nil {
		return errors.Wrapf(err, "listing %s", opts.entity)
	}

	var w io.Writer = cli.out
	if opts.out != "-" && opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer f.Close()
		w = f
	}

	trans := core.GetTranslator(core.NewUniversalTranslator(), lang)
	switch format {
	case formatXLSX:
		err = dashboard.ExportXLSX(w, trans, opts.entity, entity.Columns(), rows)
	default:
		err = dashboard.ExportCSV(w, trans, entity.Columns(), rows)
	}
	if err != nil {
		return errors.Wrapf(err, "exporting %s", opts.entity)
	}
	if w != cli.out {
		cli.logger.Info(fmt.Sprintf("%d %s exported to %s", len(rows), opts.entity, opts.out))
	}
	return nil
}
