package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/samvad-hq/userdir/internal/app"
	"github.com/samvad-hq/userdir/internal/config"
	"github.com/samvad-hq/userdir/internal/logger"
)

type cli struct {
	BaseURL         string `name:"base-url" help:"Directory base URL (overrides USERDIR_BASE_URL)."`
	Directory       string `help:"Named directory from the directories file."`
	DirectoriesFile string `name:"directories-file" help:"YAML/JSON file with named directories." type:"path"`
	Format          string `help:"Output format: json or yaml."`

	User  userCmd  `cmd:"" help:"Fetch a single user by id."`
	Users usersCmd `cmd:"" help:"Fetch all users."`
}

// apply overlays non-empty flags on the loaded config.
func (c *cli) apply(cfg *config.Config) {
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.Directory != "" {
		cfg.Directory = c.Directory
	}
	if c.DirectoriesFile != "" {
		cfg.DirectoriesFile = c.DirectoriesFile
	}
	if c.Format != "" {
		cfg.OutputFormat = c.Format
	}
}

type cmdEnv struct {
	ctx    context.Context
	lookup *app.Lookup
	out    io.Writer
}

type userCmd struct {
	ID string `arg:"" help:"User id."`
}

func (c *userCmd) Run(rt *cmdEnv) error {
	user, err := rt.lookup.User(rt.ctx, c.ID)
	if err != nil {
		return err
	}
	return rt.lookup.Render(rt.out, user)
}

type usersCmd struct{}

func (c *usersCmd) Run(rt *cmdEnv) error {
	users, err := rt.lookup.Users(rt.ctx)
	if err != nil {
		return err
	}
	return rt.lookup.Render(rt.out, users)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "userdir: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cli
	parser, err := kong.New(&flags,
		kong.Name("userdir"),
		kong.Description("Query a remote user directory."),
	)
	if err != nil {
		return fmt.Errorf("build cli: %w", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return fmt.Errorf("parse arguments: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lookup, err := app.NewLookup(cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize lookup", "error", err.Error())
		return err
	}

	return kctx.Run(&cmdEnv{ctx: ctx, lookup: lookup, out: os.Stdout})
}
