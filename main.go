package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"envboot/internal/boot"
	"envboot/internal/config"
	"envboot/internal/fallback"
	"envboot/internal/model"
	"envboot/internal/platform/host"
	"envboot/internal/repo"
	"envboot/internal/setup"
	"envboot/internal/tui"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tcnksm/go-latest"
)

const (
	releaseOwner      = "envboot-dev"
	releaseRepository = "envboot"
)

func checkUpdate(currentVer string) {
	githubTag := &latest.GithubTag{
		Owner:      releaseOwner,
		Repository: releaseRepository,
	}

	res, err := latest.Check(githubTag, strings.TrimPrefix(currentVer, "v"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Update check failed: %v\n", err)
		return
	}

	if res.Outdated {
		fmt.Printf("A new version is available: %s (you have %s)\n", res.Current, currentVer)
		fmt.Printf("Download it from https://github.com/%s/%s/releases\n", releaseOwner, releaseRepository)
	} else {
		fmt.Printf("You are using the latest version: %s\n", currentVer)
	}
}

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: envboot [options] [%s <hook>]\n\n", fallback.HookSentinel)
		fmt.Fprintf(os.Stderr, "envboot picks an installed environment from the SD card and runs its setup modules.\n")
		fmt.Fprintf(os.Stderr, "With no environments installed it hands control back to the system menu.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  envboot                       # Boot (menu or saved default)\n")
		fmt.Fprintf(os.Stderr, "  envboot --menu                # Always show the menu\n")
		fmt.Fprintf(os.Stderr, "  envboot --list --root /mnt/sd # Show environments and setup modules\n")
	}

	configFlag := pflag.StringP("config", "c", "", "Path to an envboot.toml config file")
	pflag.StringP("root", "r", "", "SD card storage root (storage_root)")
	pflag.String("log-level", "", "Log level: debug, info, warn, error (log_level)")
	menuFlag := pflag.BoolP("menu", "m", false, "Show the environment menu even if a default is saved")
	listFlag := pflag.BoolP("list", "l", false, "List environments and their setup modules, then exit")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	updateFlag := pflag.BoolP("update", "u", false, "Check for a newer release")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Parse()

	if *helpFlag {
		pflag.Usage()
		return
	}

	if *versionFlag {
		fmt.Printf("envboot version %s\n", model.Version)
		return
	}

	if *updateFlag {
		checkUpdate(model.Version)
		return
	}

	config.Init(*configFlag)
	_ = viper.BindPFlag("storage_root", pflag.Lookup("root"))
	_ = viper.BindPFlag("log_level", pflag.Lookup("log-level"))
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "envboot: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "envboot: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if *listFlag {
		runListMode(cfg)
		return
	}

	runBoot(cfg, logger, *menuFlag)
}

func runBoot(cfg config.Config, logger *slog.Logger, menuRequested bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	services := host.New(host.Options{
		StateDir:     cfg.StateDir,
		ModuleRunner: cfg.ModuleRunner,
		MenuCommand:  cfg.MenuCommand,
		Linger:       cfg.Linger,
		Logger:       logger,
	})

	hooks := fallback.Hooks{
		"clear-default": func(context.Context) error { return services.ClearDefault() },
	}

	pipeline := boot.New(boot.Options{
		FS:            afero.NewOsFs(),
		StorageRoot:   cfg.StorageRoot,
		ModuleExt:     cfg.ModuleExt,
		GuardMarker:   cfg.MarkerPath(),
		ForceMenu:     cfg.ForceMenu,
		MenuRequested: menuRequested,
		Args:          pflag.Args(),
		Hooks:         hooks,
	}, services, &tui.Display{}, logger)

	if err := pipeline.Run(ctx); err != nil {
		fatal(logger, err)
	}
}

// fatal halts with a diagnostic. Nothing is cleaned up.
func fatal(logger *slog.Logger, err error) {
	logger.Error("fatal", "error", err)
	fmt.Fprintf(os.Stderr, "envboot: %v\n", err)
	os.Exit(1)
}

func runListMode(cfg config.Config) {
	fs := afero.NewOsFs()
	r := repo.New(fs, cfg.StorageRoot)
	set := r.Scan()

	if set.Empty() {
		fmt.Printf("No valid environments found in %s\n", r.Root())
		return
	}

	for _, env := range set.All() {
		fmt.Printf("%s  (%s)\n", env.Name, env.Path)
		modules, err := setup.List(fs, env.Path, cfg.ModuleExt)
		if err != nil {
			fmt.Printf("    error: %v\n", err)
			continue
		}
		if len(modules) == 0 {
			fmt.Printf("    (no setup modules)\n")
		}
		for _, m := range modules {
			status := "run "
			if m.Skip {
				status = "skip"
			}
			fmt.Printf("    [%s] %s\n", status, m.Name)
		}
	}
}

func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid log_level %q: %w", cfg.LogLevel, err)
	}

	var out io.Writer = os.Stderr
	closer := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closer = func() { f.Close() }
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}
