package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"vidgrab/internal/fetch"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "fetch <filename>",
		Short: "Download a finished file from the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			target := strings.TrimSpace(dest)
			if target == "" {
				target = cfg.Paths.DownloadDir
			}
			transport, err := ctx.newClient()
			if err != nil {
				return err
			}

			opts := []fetch.Option{fetch.WithLogger(ctx.ensureLogger())}
			out := cmd.ErrOrStderr()
			var (
				barMu sync.Mutex
				bar   *progressbar.ProgressBar
			)
			if shouldColorize(out) {
				opts = append(opts, fetch.WithProgress(func(p fetch.Progress) {
					barMu.Lock()
					defer barMu.Unlock()
					if bar == nil {
						bar = progressbar.NewOptions64(p.Size,
							progressbar.OptionSetWriter(out),
							progressbar.OptionSetDescription(p.Filename),
							progressbar.OptionShowBytes(true),
							progressbar.OptionSetWidth(30),
						)
					}
					_ = bar.Set64(p.BytesComplete)
				}))
			}

			path, err := fetch.New(transport, opts...).Download(cmd.Context(), args[0], target)
			if bar != nil {
				_ = bar.Finish()
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "Destination directory (default: paths.download_dir)")
	return cmd
}
