package main

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/educa-portal/acervo/internal/browse"
	"github.com/educa-portal/acervo/internal/cache"
	"github.com/educa-portal/acervo/internal/catalog"
	"github.com/educa-portal/acervo/internal/config"
	"github.com/educa-portal/acervo/internal/portal"
)

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	serverURL  string
	jsonOutput bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "acervo",
		Short: "CLI for the school portal's book and video library",
		Long: `acervo - CLI for the school portal's book and video library

Lists the books and videos the logged-in user may see, with search,
genre filters and pagination. Age ratings are enforced for students;
teachers see and manage everything.

Run 'acervo login' first.`,
		SilenceUsage: true,
		Version:      version,
	}
	cmd.SetVersionTemplate("acervo {{.Version}}\n")

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: discovered)")
	pf.StringVar(&opts.serverURL, "server", "", "Portal API URL (overrides config)")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	pf.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	cmd.AddCommand(
		newLoginCmd(opts),
		newListCmd(opts, catalog.KindBook),
		newListCmd(opts, catalog.KindVideo),
		newGenresCmd(opts),
		newLikeCmd(opts),
		newDeleteCmd(opts),
		newWhoamiCmd(opts),
		newConfigCmd(opts),
		newCacheCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig resolves the config file. Without any file the defaults are
// used and the location points where login would create one.
func loadConfig(opts *globalOptions) (*config.Config, config.Location, error) {
	loc, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, config.Location{}, err
	}
	cfg, err := config.LoadFrom(loc)
	if err != nil {
		return nil, config.Location{}, err
	}

	if opts.serverURL != "" {
		cfg.Portal.URL = opts.serverURL
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg, loc, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// app wires the portal client, snapshot cache and browse service for a
// single command run.
type app struct {
	cfg     *config.Config
	cfgPath string
	log     *slog.Logger
	client  *portal.Client
	db      *sql.DB
	svc     *browse.Service
}

func newApp(cmd *cobra.Command, opts *globalOptions, offline bool) (*app, error) {
	cfg, loc, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.Log, cmd.ErrOrStderr())
	log.Debug("config resolved", "path", loc.Path, "source", loc.Source)
	a := &app{
		cfg:     cfg,
		cfgPath: loc.Path,
		log:     log,
		client:  portal.NewClient(cfg.Portal.URL, cfg.Portal.Token, cfg.Portal.Timeout, log),
	}

	var store browse.SnapshotStore
	if cfg.Cache.Enabled {
		db, err := cache.Open(cfg.Cache.Path)
		switch {
		case err == nil:
			a.db = db
			store = cache.New(db)
		case offline:
			return nil, fmt.Errorf("offline mode needs the cache: %w", err)
		default:
			log.Warn("snapshot cache unavailable", "path", cfg.Cache.Path, "error", err)
		}
	} else if offline {
		return nil, fmt.Errorf("offline mode needs the cache, but cache.enabled is false")
	}

	a.svc = browse.NewService(a.client, store, browse.Options{
		BooksPerPage:  cfg.Library.BooksPerPage,
		VideosPerPage: cfg.Library.VideosPerPage,
		SnapshotTTL:   cfg.Cache.TTL,
		Offline:       offline,
	}, log)
	return a, nil
}

func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

// errorHint suggests a next step for errors a user can fix.
func errorHint(err error) string {
	switch {
	case errors.Is(err, portal.ErrUnauthorized):
		return "Hint: session missing or expired, run 'acervo login'."
	case errors.Is(err, portal.ErrUnavailable):
		return "Hint: portal unreachable; check portal.url or use --offline."
	case errors.Is(err, browse.ErrNoSnapshot):
		return "Hint: no cached copy yet; browse once while online."
	case errors.Is(err, browse.ErrNotPermitted):
		return "Hint: only teachers (Professor) can manage content."
	default:
		return ""
	}
}
