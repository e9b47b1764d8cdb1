package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/hrskills/pkg/presenter"
	"github.com/jingkaihe/hrskills/pkg/session"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect and clear session state",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Help()
	},
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show every key stored in a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store session.Store) error {
			entries, err := store.List(ctx, args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				presenter.Info(fmt.Sprintf("Session %s has no stored state.", args[0]))
				return nil
			}
			return printSessionEntries(os.Stdout, entries)
		})
	},
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <session-id>",
	Short: "Delete every key stored in a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(ctx context.Context, store session.Store) error {
			if err := store.Clear(ctx, args[0]); err != nil {
				return err
			}
			presenter.Success(fmt.Sprintf("Cleared session %s", args[0]))
			return nil
		})
	},
}

func init() {
	addStoreFlags(sessionCmd.PersistentFlags())
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionClearCmd)
}

func withStore(cmd *cobra.Command, f func(ctx context.Context, store session.Store) error) error {
	ctx := cmd.Context()
	store, err := getStoreFlags(cmd.Flags()).open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	return f(ctx, store)
}

func printSessionEntries(w io.Writer, entries []session.Entry) error {
	for _, e := range entries {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, e.Value, "", "  "); err != nil {
			pretty.Reset()
			pretty.Write(e.Value)
		}
		if _, err := fmt.Fprintf(w, "%s (updated %s)\n%s\n\n", e.Key, e.UpdatedAt.Format("2006-01-02 15:04:05"), pretty.String()); err != nil {
			return errors.Wrap(err, "failed to write session entry")
		}
	}
	return nil
}
