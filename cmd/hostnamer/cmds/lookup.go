package cmd

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/DCSO/hostnamer/types"
	"github.com/DCSO/hostnamer/util"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func doLookup(ctx context.Context, r *util.DoHResolver, name, rrtype string, out io.Writer) error {
	res, err := r.ForwardLookup(ctx, name, rrtype)
	if errors.Is(err, util.ErrNoAnswer) {
		fmt.Fprintln(out, types.NoDataMarker)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res)
	return nil
}

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup NAME [TYPE]",
	Short: "Resolve a name via DoH",
	Long: `The lookup command queries the configured DoH endpoint for records of
the given type (default A) and prints all answers, one per line.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		rrtype := "A"
		if len(args) > 1 {
			rrtype = args[1]
		}
		r, err := makeResolver()
		if err != nil {
			log.Fatal(err)
		}
		ctx, cancel := signalContext()
		defer cancel()
		if err = doLookup(ctx, r, args[0], rrtype, cmd.OutOrStdout()); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
