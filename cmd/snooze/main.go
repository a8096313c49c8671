package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/pevans/snooze/app"
	"github.com/pevans/snooze/client"
	"github.com/pevans/snooze/config"
	"github.com/pevans/snooze/logger"
	"github.com/pevans/snooze/session"
)

// handler runs one subcommand. Errors are printed by run after the app is
// torn down.
type handler func(ctx context.Context, a *app.App, args []string) error

var handlers = map[string]handler{
	"signup":     handleSignup,
	"login":      handleLogin,
	"logout":     handleLogout,
	"whoami":     handleWhoami,
	"feed":       handleFeed,
	"browse":     handleBrowse,
	"favorites":  handleFavorites,
	"mine":       handleMine,
	"submit":     handleSubmit,
	"favorite":   handleFavorite,
	"unfavorite": handleUnfavorite,
	"delete":     handleDelete,
	"import":     handleImport,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes the subcommand in args and returns the process exit code.
func run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	subcommand := args[0]
	switch subcommand {
	case "help", "--help", "-h":
		printUsage()
		return 0
	}

	handle, ok := handlers[subcommand]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		return 1
	}

	defer logger.Sync()

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	err = handle(ctx, a, args[1:])
	if tdErr := a.Teardown(); tdErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", tdErr)
	}

	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}

// openApp loads configuration and restores the saved session. A session that
// cannot be restored because of an API failure is reported and the app
// continues anonymously.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := session.Open(cfg.Session.Type, cfg.Session.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	api := client.New(cfg.BaseURL,
		client.WithTimeout(cfg.Timeout),
		client.WithLogger(logger.Log.Named("client")),
	)

	a := app.New(api, store,
		app.WithLogger(logger.Log.Named("app")),
		app.WithPageSize(cfg.PageSize),
	)
	if err := a.Init(ctx); err != nil {
		if !app.Recoverable(err) {
			store.Close()
			return nil, fmt.Errorf("failed to restore session: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not restore session: %s\n", describe(err))
	}
	return a, nil
}

func printUsage() {
	fmt.Println("snooze - Hack-or-Snooze command-line client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  snooze <command> [arguments]")
	fmt.Println()
	fmt.Println("Account:")
	fmt.Println("  signup       Create an account and log in")
	fmt.Println("  login        Log in")
	fmt.Println("  logout       Log out and forget the saved session")
	fmt.Println("  whoami       Show the logged-in user")
	fmt.Println()
	fmt.Println("Stories:")
	fmt.Println("  feed         List stories from the global feed")
	fmt.Println("  browse       Page through the feed interactively")
	fmt.Println("  favorites    List your favorite stories")
	fmt.Println("  mine         List the stories you posted")
	fmt.Println("  submit       Post a new story")
	fmt.Println("  favorite     Mark a story as a favorite")
	fmt.Println("  unfavorite   Remove a story from your favorites")
	fmt.Println("  delete       Delete one of your stories")
	fmt.Println("  import       Post entries from an RSS or Atom feed")
	fmt.Println("  help         Show this help message")
	fmt.Println()
	fmt.Println("Configuration is read from ~/.snooze/config.yaml, .env and the environment.")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  SNOOZE_BASE_URL       API base URL")
	fmt.Println("  SNOOZE_PAGE_SIZE      Stories per page (default: 25)")
	fmt.Println("  SNOOZE_TIMEOUT        Request timeout (default: 10s)")
	fmt.Println("  SNOOZE_LOG_LEVEL      debug, info, warn or error (default: warn)")
	fmt.Println("  SNOOZE_SESSION_TYPE   sqlite, file or memory (default: sqlite)")
	fmt.Println("  SNOOZE_SESSION_DSN    Session database or file path")
}
