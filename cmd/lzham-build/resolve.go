package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contriboss/lzham-go/sysbuild"
)

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the linkage decision without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, _, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			d := sysbuild.ResolveLinkage(opts)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "linkage=%s\n", d.Linkage)
			fmt.Fprintf(out, "target=%s\n", d.Target)
			fmt.Fprintf(out, "tag=%s\n", d.Linkage.BuildTag())
			fmt.Fprintf(out, "prefix=%s\n", sysbuild.InstallPrefix(opts.InstallRoot, d.Linkage, d.Target))
			fmt.Fprintf(out, "reason=%s\n", d.Message())
			return nil
		},
	}
}
