package cmd

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"fmt"
	"io"

	"github.com/DCSO/hostnamer/util"

	"github.com/spf13/cobra"
)

const (
	version = "0.3.0"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "hostnamer %s\n", version)
	fmt.Fprintf(w, "default DoH endpoint: %s\n", util.DefaultDoHEndpoint)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show hostnamer version",
	Long: `The version command prints the hostnamer release and the DNS-over-HTTPS
JSON endpoint used when no --doh-endpoint is configured.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
