package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/contriboss/lzham-go/sysbuild"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate Go declarations for lzham.h",
		Long:  "generate runs cgo -godefs on the wrapper header for the target and writes one declaration file per target.",
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

			path, err := sysbuild.NewBindingGenerator(opts, log).Generate(ctx, opts.Target)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.ErrOrStderr(), "generated %s\n", path)
			return nil
		},
	}
}
