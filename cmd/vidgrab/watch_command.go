package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"vidgrab/internal/tracker"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch <download-id>",
		Short: "Follow an already submitted download until it finishes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return errors.New("download id is required")
			}
			return runTracked(cmd, ctx, trackOptions{jsonOutput: jsonOutput},
				func(runCtx context.Context, session *tracker.Session) (*tracker.Job, error) {
					return session.Watch(runCtx, id), nil
				})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit one JSON view state per change")
	return cmd
}
