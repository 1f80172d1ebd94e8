package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"vidgrab/internal/api"
	"vidgrab/internal/config"
	"vidgrab/internal/logging"
	"vidgrab/internal/tracker"
)

type submitFlags struct {
	format     string
	proxyURL   string
	proxyUser  string
	proxyPass  string
	noProxy    bool
	noWait     bool
	jsonOutput bool
}

func newSubmitCommand(ctx *commandContext) *cobra.Command {
	var flags submitFlags

	cmd := &cobra.Command{
		Use:   "submit <url>",
		Short: "Submit a video URL and follow the download to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			input := buildFormInput(cmd, cfg, args[0], flags)

			if flags.noWait {
				return submitOnly(cmd, ctx, input, flags.jsonOutput)
			}
			return runTracked(cmd, ctx, trackOptions{jsonOutput: flags.jsonOutput, sourceURL: input.URL},
				func(runCtx context.Context, session *tracker.Session) (*tracker.Job, error) {
					return session.Start(runCtx, input)
				})
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (best, worst, mp4, webm, mp3, m4a)")
	cmd.Flags().StringVar(&flags.proxyURL, "proxy", "", "Proxy URL for the server to download through")
	cmd.Flags().StringVar(&flags.proxyUser, "proxy-user", "", "Proxy username")
	cmd.Flags().StringVar(&flags.proxyPass, "proxy-pass", "", "Proxy password")
	cmd.Flags().BoolVar(&flags.noProxy, "no-proxy", false, "Ignore the proxy configured in the config file")
	cmd.Flags().BoolVar(&flags.noWait, "no-wait", false, "Print the download id and exit without polling")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Emit one JSON view state per change")
	return cmd
}

// buildFormInput merges flags over config defaults. Passing --proxy enables
// the proxy; otherwise the configured proxy applies unless --no-proxy is set.
func buildFormInput(cmd *cobra.Command, cfg *config.Config, url string, flags submitFlags) api.FormInput {
	format := strings.TrimSpace(flags.format)
	if format == "" {
		format = cfg.Submit.Format
	}
	input := api.FormInput{URL: strings.TrimSpace(url), Format: format}

	switch {
	case cmd.Flags().Changed("proxy"):
		input.UseProxy = true
		input.Proxy = api.ProxySettings{URL: flags.proxyURL, User: flags.proxyUser, Pass: flags.proxyPass}
	case cfg.Proxy.Enabled && !flags.noProxy:
		input.UseProxy = true
		input.Proxy = api.ProxySettings{URL: cfg.Proxy.URL, User: cfg.Proxy.User, Pass: cfg.Proxy.Pass}
		if cmd.Flags().Changed("proxy-user") {
			input.Proxy.User = flags.proxyUser
		}
		if cmd.Flags().Changed("proxy-pass") {
			input.Proxy.Pass = flags.proxyPass
		}
	}
	return input
}

func submitOnly(cmd *cobra.Command, ctx *commandContext, input api.FormInput, jsonOutput bool) error {
	transport, err := ctx.newClient()
	if err != nil {
		return err
	}
	store, err := ctx.openHistory()
	if err != nil {
		ctx.ensureLogger().Warn("history unavailable", logging.Error(err))
	}
	opts := []tracker.Option{tracker.WithLogger(ctx.ensureLogger())}
	if store != nil {
		defer store.Close()
		opts = append(opts, tracker.WithRecorder(store))
	}

	renderer := newStateRenderer(cmd.ErrOrStderr(), false)
	session := tracker.NewSession(transport, renderer, opts...)
	handle, err := session.Submit(cmd.Context(), input)
	if err != nil {
		return reported(err)
	}
	if jsonOutput {
		return writeJSON(cmd, map[string]string{"download_id": handle.ID})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Download ID: %s\n", handle.ID)
	return nil
}
