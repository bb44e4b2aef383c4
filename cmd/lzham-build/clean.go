package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/contriboss/lzham-go/sysbuild"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the CMake build tree and install prefix for the resolved linkage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, log, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			if err := sysbuild.NewLinkConfigurator(opts, log).Clean(ctx); err != nil {
				return err
			}
			okColor.Fprintln(cmd.ErrOrStderr(), "cleaned")
			return nil
		},
	}
}
