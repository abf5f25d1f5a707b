package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meetingctl/meetingctl/internal/agent"
	"github.com/meetingctl/meetingctl/internal/config"
	"github.com/meetingctl/meetingctl/internal/provider"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/tools"
	"github.com/meetingctl/meetingctl/internal/tui"
)

// runChat starts the interactive chat (REPL) mode.
func runChat() error {
	cfg := initConfig()

	p, err := buildProvider(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if cfg.Model == "" {
		cfg.Model = p.DefaultModel()
	}

	sess := session.New()
	rt := buildRuntime(cfg, p, sess)

	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "open session store:", err)
		os.Exit(1)
	}
	defer store.Close()

	// Provider factory for /provider hot-swap.
	factory := agent.ProviderFactory(func(c *config.Config) (provider.Provider, error) {
		return buildProvider(c)
	})

	if useTUI {
		return tui.RunTUI(func(ui tui.IO) error {
			rt.executor.SetConfirmer(ui)
			if tc, ok := ui.(tools.ToolCanceller); ok {
				rt.executor.SetToolCanceller(tc)
			}
			a := agent.NewWithSession(p, rt.executor, cfg, ui, store, sess)
			a.SetProviderFactory(factory)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				cancel()
			}()

			return a.Run(ctx)
		})
	}

	// Plain IO mode (default)
	ui := tui.NewPlainIO()
	rt.executor.SetConfirmer(ui)

	a := agent.NewWithSession(p, rt.executor, cfg, ui, store, sess)
	a.SetProviderFactory(factory)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return a.Run(ctx)
}
