package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"snapsearch/internal/config"
	"snapsearch/internal/eventbus"
	"snapsearch/internal/preview"
	"snapsearch/internal/search"
	"snapsearch/internal/ui"
	"snapsearch/internal/ui/commands"
	"snapsearch/internal/unsplash"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	var configPath string

	cmd := &cobra.Command{
		Use:           "snapsearch [query]",
		Short:         "Search Unsplash photos from the terminal",
		Long:          "snapsearch browses Unsplash search results in a paged grid.\nSet UNSPLASH_ACCESS_KEY to your Unsplash API access key before running.",
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(v, configPath, strings.Join(args, " "))
			if err != nil {
				fmt.Fprintf(os.Stderr, "snapsearch: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default: ./config.toml or <user config dir>/snapsearch/config.toml)")
	flags.String("api-url", "", "Unsplash search endpoint")
	flags.String("log-file", "", "file to write logs to")
	flags.String("state-file", "", "file the theme preference is stored in")
	flags.Duration("timeout", 0, "per-request timeout")
	flags.Bool("no-preview", false, "disable image previews in the detail view")

	bindFlag(v, "api_url", cmd, "api-url")
	bindFlag(v, "log_file", cmd, "log-file")
	bindFlag(v, "state_file", cmd, "state-file")
	bindFlag(v, "request_timeout", cmd, "timeout")

	cmd.PreRun = func(cmd *cobra.Command, _ []string) {
		if noPreview, _ := cmd.Flags().GetBool("no-preview"); noPreview {
			v.Set("preview.enabled", false)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the snapsearch version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "snapsearch", version)
		},
	})

	return cmd
}

// bindFlag binds a flag to key; unset flags leave the key to env, file and defaults
func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

func run(v *viper.Viper, configPath, query string) error {
	configSvc := config.NewConfigService(v, configPath)
	cfg, err := configSvc.Load()
	if err != nil {
		return err
	}

	// Set up logging
	if cfg.LogFile != "" {
		logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}
	if used := configSvc.ConfigFileUsed(); used != "" {
		log.Printf("Loaded config from %s", used)
	}

	if cfg.AccessKey == "" {
		return fmt.Errorf("%w: export UNSPLASH_ACCESS_KEY", unsplash.ErrMissingAccessKey)
	}
	if query != "" {
		cfg.SeedQuery = query
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	client := unsplash.NewClient(cfg.APIURL, cfg.AccessKey,
		unsplash.WithHTTPClient(httpClient),
		unsplash.WithUserAgent("snapsearch/"+version),
	)
	dispatcher := search.NewDispatcher(client, cfg.RequestTimeout)

	// A nil *preview.Renderer inside the interface would not compare equal to nil
	var previewer commands.Previewer
	if cfg.Preview.Enabled {
		renderer, err := preview.NewRenderer(httpClient, cfg.Preview.CacheSize)
		if err != nil {
			return err
		}
		previewer = renderer
	}

	prefs := config.NewPreferenceStore(cfg.StateFile)
	theme, err := prefs.LoadTheme()
	if err != nil {
		// A broken preference file should not keep the app from starting
		log.Printf("Failed to load preferences from %s: %v", prefs.Path(), err)
	}

	bus := eventbus.New()
	defer bus.Close()

	model := ui.NewModel(cfg, bus, dispatcher, previewer, theme)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	subscribe(bus, p, prefs)

	log.Printf("Starting UI with query %q", cfg.SeedQuery)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}

// subscribe wires persistence and logging to domain events
func subscribe(bus eventbus.EventBus, p *tea.Program, prefs *config.PreferenceStore) {
	bus.Subscribe(eventbus.EventThemeChanged, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.ThemeChangedEvent)
		if !ok {
			return
		}
		if err := prefs.SaveTheme(event.Theme); err != nil {
			log.Printf("Failed to save theme: %v", err)
			bus.Publish(eventbus.ErrorEvent{Message: "Could not save theme preference", Err: err})
			return
		}
		log.Printf("Theme %s saved to %s", event.Theme, prefs.Path())
	})

	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if p != nil {
			p.Send(ui.EventMsg{Event: e})
		}
	})

	bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchCompletedEvent); ok {
			log.Printf("Search #%d %q page %d: %d results, %d pages", event.Seq, event.Query, event.Page, event.Results, event.TotalPages)
		}
	})

	bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SearchFailedEvent); ok {
			log.Printf("Search #%d %q page %d failed: %v", event.Seq, event.Query, event.Page, event.Err)
		}
	})

	bus.Subscribe(eventbus.EventLikeToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.LikeToggledEvent); ok {
			log.Printf("Photo %s liked=%t", event.PhotoID, event.Liked)
		}
	})
}
