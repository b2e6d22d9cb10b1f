package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/userdir/internal/config"
	"github.com/samvad-hq/userdir/internal/domain"
	"github.com/samvad-hq/userdir/internal/logger"
	"github.com/samvad-hq/userdir/pkg/directories"
	"github.com/samvad-hq/userdir/pkg/userrepo"
)

// Lookup wires config, the optional directory registry and the user repository
// for one-shot queries.
type Lookup struct {
	cfg    *config.Config
	repo   *userrepo.Repo
	log    logger.Logger
	target string
}

// NewLookup builds a lookup runtime from config.
func NewLookup(cfg *config.Config, log logger.Logger) (*Lookup, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	baseURL, timeout, target, err := resolveTarget(cfg)
	if err != nil {
		return nil, err
	}

	repo := userrepo.New(baseURL,
		userrepo.WithTimeout(timeout),
		userrepo.WithLogger(log),
	)
	log.InfoObj("user repository initialized", "repo_config", map[string]any{
		"target":          target,
		"base_url":        repo.BaseURL(),
		"timeout_seconds": int(timeout.Seconds()),
	})

	return &Lookup{cfg: cfg, repo: repo, log: log, target: target}, nil
}

// resolveTarget picks the base URL from the named directory when one is set,
// otherwise from base_url.
func resolveTarget(cfg *config.Config) (string, time.Duration, string, error) {
	if cfg.Directory == "" {
		return cfg.BaseURL, cfg.RequestTimeout, "base_url", nil
	}
	if cfg.DirectoriesFile == "" {
		return "", 0, "", fmt.Errorf("directory %q requested but directories_file is not set", cfg.Directory)
	}
	reg, err := directories.Load(cfg.DirectoriesFile)
	if err != nil {
		return "", 0, "", fmt.Errorf("load directories registry: %w", err)
	}
	d, ok := reg.ByID(cfg.Directory)
	if !ok {
		return "", 0, "", fmt.Errorf("directory %q not found in %s", cfg.Directory, cfg.DirectoriesFile)
	}
	return d.BaseURL, d.Timeout(), "directory:" + d.ID, nil
}

// User fetches a single user by id.
func (l *Lookup) User(ctx context.Context, id string) (domain.User, error) {
	start := time.Now()
	user, err := l.repo.GetUser(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	l.log.InfoObj("user fetched", "lookup_meta", map[string]any{
		"target":     l.target,
		"user_id":    user.ID,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return user, nil
}

// Users fetches the full user list.
func (l *Lookup) Users(ctx context.Context) (domain.UserList, error) {
	start := time.Now()
	users, err := l.repo.GetUsers(ctx)
	if err != nil {
		return nil, err
	}
	l.log.InfoObj("users fetched", "lookup_meta", map[string]any{
		"target":     l.target,
		"count":      len(users),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return users, nil
}

// Render writes v in the configured output format.
func (l *Lookup) Render(w io.Writer, v any) error {
	switch l.cfg.OutputFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
