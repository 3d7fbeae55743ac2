package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/online-shop/shopfront/config"
	"github.com/online-shop/shopfront/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx      context.Context
	Logger   *slog.Logger
	Config   config.AppConfig
	Services *bootstrap.Services
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	creds, closeStore, err := bootstrap.NewCredentialStore(ctx, cfg.State, logger)
	if err != nil {
		logger.ErrorContext(ctx, "build credential store", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal infrastructure failure to callers
	}
	defer func() {
		if cerr := closeStore(); cerr != nil {
			logger.ErrorContext(ctx, "close credential store failed", "error", cerr)
		}
	}()

	metrics, err := bootstrap.NewMetrics(cfg.Observability.StatsD, logger)
	if err != nil {
		logger.ErrorContext(ctx, "build metrics sink", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal infrastructure failure to callers
	}
	defer func() {
		if cerr := metrics.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close metrics sink failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		Credentials: creds,
		Logger:      logger,
		Metrics:     metrics,
	})
	if err != nil {
		logger.ErrorContext(ctx, "wire services", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal wiring failure to callers
	}

	// Restore a previous login before any command runs. The restored
	// session also triggers the cart reload through the subscription.
	services.Session.Bootstrap(ctx)

	cmdCtx := &commandContext{
		Ctx:      ctx,
		Logger:   logger,
		Config:   cfg,
		Services: services,
	}
	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.ErrorContext(ctx, "command failed", "command", cmdName, "error", runErr)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Log in and persist the session for later commands",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Clear the persisted session",
			run:         runLogout,
		},
		"register": {
			name:        "register",
			description: "Create a new customer account",
			run:         runRegister,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current session",
			run:         runWhoami,
		},
		"products": {
			name:        "products",
			description: "Browse the product catalog",
			run:         runProducts,
		},
		"cart": {
			name:        "cart",
			description: "Show the current cart",
			run:         runCartShow,
		},
		"cart-add": {
			name:        "cart-add",
			description: "Add a product to the cart",
			run:         runCartAdd,
		},
		"cart-update": {
			name:        "cart-update",
			description: "Change a cart item's quantity",
			run:         runCartUpdate,
		},
		"cart-remove": {
			name:        "cart-remove",
			description: "Remove an item from the cart",
			run:         runCartRemove,
		},
		"cart-clear": {
			name:        "cart-clear",
			description: "Empty the cart",
			run:         runCartClear,
		},
		"checkout": {
			name:        "checkout",
			description: "Place an order from the cart contents",
			run:         runCheckout,
		},
		"orders": {
			name:        "orders",
			description: "List the current user's orders",
			run:         runOrders,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: shopfront <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-12s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
