package client

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-pii-labeler/internal/adapter"
	"github.com/MKhiriev/go-pii-labeler/internal/config"
	"github.com/MKhiriev/go-pii-labeler/internal/logger"
	"github.com/MKhiriev/go-pii-labeler/internal/service"
	"github.com/MKhiriev/go-pii-labeler/models"
)

// systemActor runs admin-only service operations on behalf of the tool.
var systemActor = models.Actor{Login: "labelerctl", IsAdmin: true}

const usage = `usage: labelerctl <command> [flags]

database commands:
  migrate                                   apply schema migrations
  load-categories -file F [-update|-clear]  seed the category registry from JSON or YAML
  trim-tags                                 strip whitespace around stored tags
  create-admin [-login L -password P]       create or promote the admin account

server commands (LABELER_SERVER, LABELER_TOKEN):
  push -file F [-login L -password P]       upload a JSONL file
  pull -ids 1,2 [-out F] [-login L ...]     download documents as JSONL
  version                                   print the server version
`

type command func(ctx context.Context, args []string) error

type App struct {
	openBackend func(ctx context.Context) (Backend, error)
	newRemote   func() (adapter.ServerAdapter, error)
	admin       config.Admin

	out    io.Writer
	logger *logger.Logger
}

// NewApp wires the tool to the database and server named in cfg.
func NewApp(cfg *config.StructuredConfig, build models.AppBuildInfo, out io.Writer, log *logger.Logger) *App {
	return &App{
		openBackend: func(ctx context.Context) (Backend, error) {
			return OpenDatabase(ctx, cfg, build, log)
		},
		newRemote: func() (adapter.ServerAdapter, error) {
			return adapter.NewHTTPServerAdapter(cfg.Client.ServerURL, cfg.Client.Token, log)
		},
		admin:  cfg.Admin,
		out:    out,
		logger: log,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrNoCommand
	}

	commands := map[string]command{
		"migrate":         a.migrate,
		"load-categories": a.loadCategories,
		"trim-tags":       a.trimTags,
		"create-admin":    a.createAdmin,
		"push":            a.push,
		"pull":            a.pull,
		"version":         a.version,
	}

	name := args[0]
	if name == "help" || name == "-h" || name == "--help" {
		fmt.Fprint(a.out, usage)
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")

	return cmd(ctx, args[1:])
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

// withBackend opens the database for the duration of fn.
func (a *App) withBackend(ctx context.Context, fn func(b Backend) error) error {
	b, err := a.openBackend(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.Close(); err != nil {
			a.logger.Err(err).Msg("error closing database")
		}
	}()

	return fn(b)
}

// ─────────────────────────────────────────────
// Database commands
// ─────────────────────────────────────────────

func (a *App) migrate(ctx context.Context, args []string) error {
	if err := a.newFlagSet("migrate").Parse(args); err != nil {
		return err
	}

	return a.withBackend(ctx, func(b Backend) error {
		if err := b.Migrate(); err != nil {
			return fmt.Errorf("error applying migrations: %w", err)
		}
		fmt.Fprintln(a.out, "migrations applied")
		return nil
	})
}

func (a *App) loadCategories(ctx context.Context, args []string) error {
	fs := a.newFlagSet("load-categories")
	file := fs.String("file", "", "category seed file (.json, .yaml or .yml)")
	update := fs.Bool("update", false, "overwrite color and description of existing categories")
	clearAll := fs.Bool("clear", false, "remove every category before loading")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" {
		return fmt.Errorf("%w: -file", ErrMissingFlag)
	}
	if *update && *clearAll {
		return ErrConflictingMode
	}

	mode := models.SeedAdd
	switch {
	case *update:
		mode = models.SeedUpdate
	case *clearAll:
		mode = models.SeedClear
	}

	entries, err := service.LoadSeedFile(*file)
	if err != nil {
		return err
	}

	return a.withBackend(ctx, func(b Backend) error {
		result, err := b.Services().CategoryService.Seed(ctx, entries, mode)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d categories created, %d updated\n", result.Created, result.Updated)
		return nil
	})
}

func (a *App) trimTags(ctx context.Context, args []string) error {
	if err := a.newFlagSet("trim-tags").Parse(args); err != nil {
		return err
	}

	return a.withBackend(ctx, func(b Backend) error {
		updated, err := b.Services().TagService.TrimExisting(ctx, systemActor)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d tags trimmed\n", updated)
		return nil
	})
}

func (a *App) createAdmin(ctx context.Context, args []string) error {
	fs := a.newFlagSet("create-admin")
	login := fs.String("login", a.admin.Login, "admin login (ADMIN_LOGIN)")
	password := fs.String("password", a.admin.Password, "admin password (ADMIN_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *login == "" {
		return fmt.Errorf("%w: -login", ErrMissingFlag)
	}

	return a.withBackend(ctx, func(b Backend) error {
		admin, err := b.Services().AuthService.EnsureAdmin(ctx, *login, *password)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "admin %q ready (user_id %d)\n", admin.Login, admin.UserID)
		return nil
	})
}

// ─────────────────────────────────────────────
// Server commands
// ─────────────────────────────────────────────

// remote builds the server adapter and logs in when credentials are given.
func (a *App) remote(ctx context.Context, login, password string) (adapter.ServerAdapter, error) {
	remote, err := a.newRemote()
	if err != nil {
		return nil, err
	}

	if login != "" {
		if err = remote.Login(ctx, login, password); err != nil {
			return nil, err
		}
	}

	return remote, nil
}

func (a *App) push(ctx context.Context, args []string) error {
	fs := a.newFlagSet("push")
	file := fs.String("file", "", "JSONL file to upload")
	login := fs.String("login", "", "log in before uploading")
	password := fs.String("password", "", "password for -login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" {
		return fmt.Errorf("%w: -file", ErrMissingFlag)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", *file, err)
	}

	remote, err := a.remote(ctx, *login, *password)
	if err != nil {
		return err
	}

	result, err := remote.Upload(ctx, filepath.Base(*file), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "imported %d documents with %d tags, %d entities skipped\n",
		result.Documents, result.Tags, result.SkippedEntities)

	return nil
}

func (a *App) pull(ctx context.Context, args []string) error {
	fs := a.newFlagSet("pull")
	rawIDs := fs.String("ids", "", "comma-separated document ids")
	out := fs.String("out", "", "output file (stdout when empty)")
	login := fs.String("login", "", "log in before downloading")
	password := fs.String("password", "", "password for -login")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *rawIDs == "" {
		return fmt.Errorf("%w: -ids", ErrMissingFlag)
	}
	ids, err := parseIDs(*rawIDs)
	if err != nil {
		return err
	}

	remote, err := a.remote(ctx, *login, *password)
	if err != nil {
		return err
	}

	data, err := remote.Export(ctx, ids)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = a.out.Write(data)
		return err
	}

	if err = os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", *out, err)
	}
	fmt.Fprintf(a.out, "%d documents written to %s\n", len(ids), *out)

	return nil
}

func (a *App) version(ctx context.Context, args []string) error {
	if err := a.newFlagSet("version").Parse(args); err != nil {
		return err
	}

	remote, err := a.newRemote()
	if err != nil {
		return err
	}

	v, err := remote.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "server version: %s\n", v)

	return nil
}

// parseIDs reads "1,2, 3" into positive ids. Duplicates are kept.
func parseIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIDs, part)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIDs, raw)
	}

	return ids, nil
}
