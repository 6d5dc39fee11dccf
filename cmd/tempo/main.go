package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/bootstrap"
	sessiondto "tempo/internal/modules/session/dto"
	"tempo/internal/platform/config"
	apperrors "tempo/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Personal focus-session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.tempo)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newStopCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newLogCmd(&dataDir))
	root.AddCommand(newEditCmd(&dataDir))
	root.AddCommand(newDeleteCmd(&dataDir))
	root.AddCommand(newTotalCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newResetCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

// tagUpdate translates the --tag/--clear-tag flag pair into the tri-state
// tag argument. --clear-tag wins when both are given.
func tagUpdate(cmd *cobra.Command, tag string, clear bool) sessiondto.TagUpdate {
	if clear {
		return sessiondto.ClearTag()
	}
	if cmd.Flags().Changed("tag") {
		return sessiondto.SetTag(tag)
	}
	return sessiondto.KeepTag()
}

func newStartCmd(dataDir *string) *cobra.Command {
	var tag string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session (no-op when one is already running)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			update := sessiondto.KeepTag()
			if cmd.Flags().Changed("tag") {
				update = sessiondto.SetTag(tag)
			}
			out, err := app.SessionCLI.Start(context.Background(), update)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d running since %s%s\n",
				out.Number, out.StartedAt.Format("15:04:05"), tagSuffix(out.Tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "activity tag, e.g. Work")
	return cmd
}

func newStopCmd(dataDir *string) *cobra.Command {
	var experience, tag string
	var clearTag bool
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx := context.Background()
			active, err := app.SessionCLI.GetActive(ctx)
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no session running")
				return nil
			}
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Stop(ctx, active.ID, experience, tagUpdate(cmd, tag, clearTag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d completed: %s%s\n",
				out.Number, formatMS(out.DurationMS), tagSuffix(out.Tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&experience, "experience", "", "what you did or learned")
	cmd.Flags().StringVar(&tag, "tag", "", "replace the session tag")
	cmd.Flags().BoolVar(&clearTag, "clear-tag", false, "remove the session tag")
	return cmd
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running session, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SessionCLI.GetActive(context.Background())
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no session running")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d running since %s%s\n",
				out.Number, out.StartedAt.Format("2006-01-02 15:04:05"), tagSuffix(out.Tag))
			return nil
		},
	}
}

func newLogCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "log",
		Short: "List all sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			sessions, err := app.SessionCLI.ListAll(context.Background())
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, s := range sessions {
				line := fmt.Sprintf("#%-4d %s  %-9s %10s%s",
					s.Number, s.StartedAt.Format("2006-01-02 15:04"), s.Status, formatMS(s.DurationMS), tagSuffix(s.Tag))
				if s.Experience != "" {
					line += "  " + s.Experience
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s)\n", line, s.ID)
			}
			return nil
		},
	}
}

func newEditCmd(dataDir *string) *cobra.Command {
	var experience, tag string
	var clearTag bool
	cmd := &cobra.Command{
		Use:   "edit <session-id>",
		Short: "Edit a session's reflection or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			ctx := context.Background()
			if !cmd.Flags().Changed("experience") {
				// Tag-only edits keep the existing reflection text.
				sessions, err := app.SessionCLI.ListAll(ctx)
				if err != nil {
					return err
				}
				for _, s := range sessions {
					if s.ID == args[0] {
						experience = s.Experience
						break
					}
				}
			}
			out, err := app.SessionCLI.Update(ctx, args[0], experience, tagUpdate(cmd, tag, clearTag))
			if errors.Is(err, apperrors.ErrNotFound) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session not found")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session #%d updated%s\n", out.Number, tagSuffix(out.Tag))
			return nil
		},
	}
	cmd.Flags().StringVar(&experience, "experience", "", "replacement reflection text")
	cmd.Flags().StringVar(&tag, "tag", "", "replacement tag")
	cmd.Flags().BoolVar(&clearTag, "clear-tag", false, "remove the tag")
	return cmd
}

func newDeleteCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			removed, err := app.SessionCLI.Delete(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already removed")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}
}

func newTotalCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "total",
		Short: "Show total focused time across all sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			total, err := app.SessionCLI.TotalDuration(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), formatDuration(total))
			return nil
		},
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var period string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show hour-of-day and tag distributions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			snap, err := app.AnalyticsCLI.Aggregate(context.Background(), period)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "period: %s   sessions: %d   tagged: %.1f min\n\n", snap.Period, snap.SessionCount, snap.TotalMinutes)
			for hour, minutes := range snap.Hours {
				if minutes == 0 {
					continue
				}
				_, _ = fmt.Fprintf(w, "%02d:00  %6.1f min  %s\n", hour, minutes, strings.Repeat("#", barWidth(minutes, snap.Hours)))
			}
			if len(snap.Tags) > 0 {
				_, _ = fmt.Fprintln(w)
				for _, share := range snap.Tags {
					_, _ = fmt.Fprintf(w, "%-16s %8.1f min  %5.1f%%\n", share.Tag, share.Minutes, share.Percent)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&period, "period", "all", "day|month|year|all")
	return cmd
}

func newResetCmd(dataDir *string) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every session and reset numbering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				return fmt.Errorf("refusing to wipe without --force")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SessionCLI.ClearAll(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "all sessions removed")
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "confirm the wipe")
	return cmd
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the tempo terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func tagSuffix(tag string) string {
	if tag == "" {
		return ""
	}
	return " [" + tag + "]"
}

func formatMS(ms int64) string {
	return formatDuration(time.Duration(ms) * time.Millisecond)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func barWidth(minutes float64, hours [24]float64) int {
	var peak float64
	for _, m := range hours {
		if m > peak {
			peak = m
		}
	}
	if peak == 0 {
		return 0
	}
	w := int(minutes / peak * 24)
	if w < 1 {
		w = 1
	}
	return w
}
