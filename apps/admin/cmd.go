package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/Nebras-project/nebras-dashboard/core"
	"github.com/Nebras-project/nebras-dashboard/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp       = errors.New("help provided")
	errNoDatabase = errors.New("this command needs a postgres database (disable dbInMemory)")
)

type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	out     io.Writer
	db      *sql.DB // nil on the in-memory store
	usrRepo user.Repository
}

func newCommandLine(conf *core.Config, logger core.Logger, out io.Writer) *commandLine {
	return &commandLine{conf: conf, logger: logger, out: out}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME -email EMAIL [-name NAME] [-roles ROLE,...] - create or update a staff user")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME|EMAIL - reset user's password")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS...] - run a goose command (up, up-to, down, down-to, redo, reset, status, version, ...)")
	fmt.Fprintln(cli.out, "  export -entity ENTITY [-format csv|xlsx] [-out FILE] [-query QUERY] - export a table through the API")
}

// promptPassword reads a password without echoing it.
func (cli *commandLine) promptPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username. The password will be prompted next.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's full name (defaults to the username).")
	addUserRoles := addUserCmd.String("roles", user.RoleAdminOwner, "Comma separated roles: "+strings.Join(user.AllRoles, ", "))

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ContinueOnError)
	resetPasswordUname := resetPasswordCmd.String("username", "", "The user's username or email. The password will be prompted next.")

	exportCmd := flag.NewFlagSet("export", flag.ContinueOnError)
	exportOpts := exportOptions{}
	exportCmd.StringVar(&exportOpts.entity, "entity", "", "One of: "+strings.Join(exportEntities(), ", "))
	exportCmd.StringVar(&exportOpts.format, "format", "", "csv or xlsx (defaults to the -out extension, then csv)")
	exportCmd.StringVar(&exportOpts.out, "out", "-", "Output file; - writes to stdout")
	exportCmd.StringVar(&exportOpts.query, "query", "", "List filters, e.g. stage=primary&search=math")
	exportCmd.StringVar(&exportOpts.apiURL, "api", cli.defaultAPIURL(), "Base URL of the admin API")
	exportCmd.StringVar(&exportOpts.username, "username", "", "Staff username or email used to log in. The password will be prompted next.")
	exportCmd.StringVar(&exportOpts.lang, "lang", cli.conf.DefaultLanguage, "Language of the headers: en or ar")

	for _, fs := range []*flag.FlagSet{addUserCmd, resetPasswordCmd, exportCmd} {
		fs.SetOutput(cli.out)
	}

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserUname, *addUserEmail, pwd, splitRoles(*addUserRoles))

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *resetPasswordUname == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordUname, pwd)

	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "export":
		if err := exportCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if exportOpts.entity == "" || exportOpts.username == "" {
			exportCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword("Enter password:")
		if err != nil {
			return err
		}
		exportOpts.password = pwd
		return cli.export(exportOpts)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) defaultAPIURL() string {
	addr := cli.conf.Server.Address
	if strings.HasPrefix(addr, ":") {
		addr = cli.conf.Server.Host + addr
	}
	return "http://" + addr
}

func splitRoles(s string) []string {
	var roles []string
	for _, role := range strings.Split(s, ",") {
		if role = core.CleanString(role, true /* lower */); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}
