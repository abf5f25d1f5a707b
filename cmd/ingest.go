package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/meetingctl/meetingctl/internal/session"
	"github.com/spf13/cobra"
)

func newIngestCmd() *cobra.Command {
	var rawURL string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Fetch a transcript URL and extract minutes, without the agent loop",
		Example: `  meetingctl ingest -u https://example.com/standup-notes
  meetingctl ingest --url https://example.com/meeting.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rawURL == "" {
				return fmt.Errorf("--url / -u is required")
			}
			return runIngest(rawURL)
		},
	}

	cmd.Flags().StringVarP(&rawURL, "url", "u", "", "transcript URL to ingest")
	cmd.MarkFlagRequired("url")

	return cmd
}

// runIngest runs the two-pass pipeline directly and saves the session so a
// later chat can resume it.
func runIngest(rawURL string) error {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	msg, err := rt.pipeline.Process(ctx, sess, rawURL)
	if err != nil {
		return err
	}
	fmt.Println(msg)

	if rec, ok := sess.LatestMinutes(); ok {
		fmt.Printf("Title: %s\nDecisions: %d\nAction items: %d\n",
			rec.Minutes.TitleOrDefault(), len(rec.Minutes.Decisions), len(rec.Minutes.ActionItems))
	}

	if err := store.Save(sess); err != nil {
		return err
	}
	fmt.Printf("Session saved: %s (resume it with /resume %s in chat)\n", sess.ID[:8], sess.ID[:8])
	return nil
}
