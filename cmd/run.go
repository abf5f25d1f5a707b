package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meetingctl/meetingctl/internal/agent"
	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/meetingctl/meetingctl/internal/tui"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a single prompt non-interactively",
		Example: `  meetingctl run -P "process https://example.com/standup and summarize it"
  meetingctl run --prompt "email the latest minutes to team@example.com"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompt == "" {
				return fmt.Errorf("--prompt / -P is required")
			}
			return runOnce(prompt)
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "P", "", "the prompt to execute")
	cmd.MarkFlagRequired("prompt")

	return cmd
}

// runOnce executes a single prompt and exits.
func runOnce(prompt string) error {
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

	ui := tui.NewPlainIO()
	rt.executor.SetConfirmer(ui)

	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "open session store:", err)
		os.Exit(1)
	}
	defer store.Close()

	a := agent.NewWithSession(p, rt.executor, cfg, ui, store, sess)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := a.RunOnce(ctx, prompt); err != nil {
		return err
	}
	return store.Save(sess)
}
