package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/term"

	"durgamondir/internal/store"
)

var (
	// readPasswordFunc reads a password without echo; tests replace it.
	readPasswordFunc = func() ([]byte, error) { return term.ReadPassword(int(syscall.Stdin)) }

	errHelp = errors.New("help provided")
)

type commandLine struct {
	users *store.UserStore
	out   io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  liststaff                           - list staff accounts")
	fmt.Fprintln(cli.out, "  adduser -email EMAIL [-name NAME]   - add a staff account, password is prompted")
	fmt.Fprintln(cli.out, "  resetpassword -email EMAIL          - set a new password, prompted")
	fmt.Fprintln(cli.out, "  reset2fa -email EMAIL               - force authenticator setup on next login")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "liststaff":
		return cli.listStaff(ctx)

	case "adduser":
		fs := cli.flagSet("adduser")
		email := fs.String("email", "", "Email address used to sign in.")
		name := fs.String("name", "", "Display name shown in the back office.")
		if err := fs.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *email == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.addUser(ctx, *email, *name, pwd)

	case "resetpassword":
		fs := cli.flagSet("resetpassword")
		email := fs.String("email", "", "Email address of the account.")
		if err := fs.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *email == "" {
			fs.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		return cli.resetPassword(ctx, *email, pwd)

	case "reset2fa":
		fs := cli.flagSet("reset2fa")
		email := fs.String("email", "", "Email address of the account.")
		if err := fs.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *email == "" {
			fs.Usage()
			return errHelp
		}
		return cli.resetTwoFactor(ctx, *email)

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) promptPassword() (string, error) {
	fmt.Fprint(cli.out, "Enter password: ")
	pwd, err := readPasswordFunc()
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if len(pwd) == 0 {
		return "", errHelp
	}
	return string(pwd), nil
}

func (cli *commandLine) listStaff(ctx context.Context) error {
	users, err := cli.users.ListStaff(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\t2FA\tLAST LOGIN")
	for _, u := range users {
		last := "never"
		if u.LastLoginAt != nil {
			last = u.LastLoginAt.UTC().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.Email, u.DisplayName, u.TwoFactor(), last)
	}
	return tw.Flush()
}

func (cli *commandLine) addUser(ctx context.Context, email, name, pwd string) error {
	email = strings.TrimSpace(email)
	if _, err := cli.users.FindByEmail(ctx, email); err == nil {
		return fmt.Errorf("%s already has an account", email)
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	u, err := cli.users.Create(ctx, email, pwd, name, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created %s\n", u.Email)
	return nil
}

func (cli *commandLine) resetPassword(ctx context.Context, email, pwd string) error {
	u, err := cli.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	if err := cli.users.SetPassword(ctx, u.ID, pwd); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "password changed for %s\n", u.Email)
	return nil
}

func (cli *commandLine) resetTwoFactor(ctx context.Context, email string) error {
	u, err := cli.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	if err := cli.users.ResetTOTP(ctx, u.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s will set up a new authenticator at next login\n", u.Email)
	return nil
}
