// Package cli implements the research-hub CLI commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/research-hub/internal/auth"
	"github.com/rcliao/research-hub/internal/config"
	"github.com/rcliao/research-hub/internal/logging"
	"github.com/rcliao/research-hub/internal/seed"
	"github.com/rcliao/research-hub/internal/settings"
	"github.com/rcliao/research-hub/internal/slot"
	"github.com/rcliao/research-hub/internal/store"
	"github.com/rcliao/research-hub/internal/suggest"
)

var (
	dbPath     string
	formatFlag string
	userFlag   string
	ephemeral  bool
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "research-hub",
	Short: "Catalog of completed user research",
	Long:  "Browse, submit and analyse completed research studies. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $RESEARCH_HUB_DB, config db.path or ~/.research-hub/research-hub.db)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json, yaml or text")
	RootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "Email of the person making changes (default: config auth.user_email)")
	RootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep everything in memory; nothing is written to disk")
}

// storage is the slot medium plus the introspection the stats command needs.
type storage interface {
	slot.Slots
	Path() string
	Size(ctx context.Context, key string) int
	Close() error
}

// app holds everything a command needs, opened from config.
type app struct {
	cfg         *config.Config
	logger      *zap.Logger
	slots       storage
	repo        *store.Repository
	suggestions *suggest.Reconciler
	settings    *settings.Manager
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(dbPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	var slots storage
	if ephemeral {
		slots = slot.NewMemory(cfg.DB.QuotaBytes, logger)
	} else {
		db, err := slot.Open(cfg.DBPath(), slot.WithQuota(cfg.DB.QuotaBytes), slot.WithLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		slots = db
	}

	return &app{
		cfg:         cfg,
		logger:      logger,
		slots:       slots,
		repo:        store.New(ctx, slots, store.WithLogger(logger)),
		suggestions: suggest.New(ctx, slots, seed.Suggestions(), suggest.WithLogger(logger)),
		settings:    settings.New(slots, logger),
	}, nil
}

func (a *app) Close() {
	a.logger.Sync()
	a.slots.Close()
}

// mustOpen opens the app or exits.
func mustOpen(cmd *cobra.Command) *app {
	a, err := openApp(cmd.Context())
	if err != nil {
		exitErr("open", err)
	}
	return a
}

// requireEditor exits unless the current user may change data.
func (a *app) requireEditor() {
	user := userFlag
	if user == "" {
		user = a.cfg.Auth.UserEmail
	}
	gate := auth.Gate{Domain: a.cfg.Auth.AllowedDomain, Required: a.cfg.Auth.Required}
	if err := gate.Allow(user); err != nil {
		if errors.Is(err, auth.ErrNoUser) {
			exitErr("auth", fmt.Errorf("%w (pass --user or set auth.user_email)", err))
		}
		exitErr("auth", fmt.Errorf("%w: only @%s accounts can make changes", err, gate.Domain))
	}
}

func exitErr(msg string, err error) {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "error: %s: invalid research\n", msg)
		for _, f := range fieldOrder(verr) {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", f, verr.Fields[f])
		}
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

// fieldOrder lists the offending fields, the first one in form order leading.
func fieldOrder(verr *store.ValidationError) []string {
	first := verr.First()
	out := []string{}
	if first != "" {
		out = append(out, first)
	}
	for _, f := range sortedKeys(verr.Fields) {
		if f != first {
			out = append(out, f)
		}
	}
	return out
}
