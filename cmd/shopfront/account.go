package main

import (
	"errors"
	"flag"
	"os"
	"text/tabwriter"

	domainauth "github.com/online-shop/shopfront/internal/domain/auth"
)

func runLogin(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("both -username and -password are required")
	}

	if err := ctx.Services.Session.Login(ctx.Ctx, domainauth.Credentials{
		Username: *username,
		Password: *password,
	}); err != nil {
		return err
	}

	sess := ctx.Services.Session.Current()
	return writef(os.Stdout, "logged in as %s (user %d, role %s)\n", sess.Username, sess.ID, sess.Role)
}

func runLogout(ctx *commandContext, _ []string) error {
	if err := ctx.Services.Session.Logout(ctx.Ctx); err != nil {
		return err
	}
	return writef(os.Stdout, "logged out\n")
}

func runRegister(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	email := fs.String("email", "", "account email")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" || *email == "" {
		return errors.New("-username, -password, and -email are required")
	}

	if err := ctx.Services.Session.Register(ctx.Ctx, domainauth.Profile{
		Username:  *username,
		Password:  *password,
		Email:     *email,
		FirstName: *firstName,
		LastName:  *lastName,
	}); err != nil {
		return err
	}

	// Registration never logs the new account in.
	return writef(os.Stdout, "account %s created; use 'shopfront login' to sign in\n", *username)
}

func runWhoami(ctx *commandContext, _ []string) error {
	sess := ctx.Services.Session.Current()
	if sess == nil {
		return writef(os.Stdout, "not logged in\n")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "USER\tUSERNAME\tROLE\n"); err != nil {
		return err
	}
	if err := writef(w, "%d\t%s\t%s\n", sess.ID, sess.Username, sess.Role); err != nil {
		return err
	}
	return w.Flush()
}
