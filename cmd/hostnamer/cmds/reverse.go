package cmd

// DCSO hostnamer
// Copyright (c) 2026, DCSO GmbH

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DCSO/hostnamer/util"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func doReverse(ctx context.Context, r *util.DoHResolver, args []string, in io.Reader, out io.Writer) error {
	ips := args
	if len(ips) == 0 {
		ips = make([]string, 0)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line != "" {
				ips = append(ips, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	if len(ips) == 0 {
		return nil
	}
	fmt.Fprintln(out, r.ReverseLookupBatch(ctx, strings.Join(ips, "\n")))
	return nil
}

// reverseCmd represents the reverse command
var reverseCmd = &cobra.Command{
	Use:   "reverse [IP...]",
	Short: "Look up host names for IP addresses via DoH",
	Long: `The reverse command prints one host name per given IP address, in input
order. If no addresses are given as arguments, they are read from stdin, one
per line. Addresses that cannot be resolved are printed as "no data".`,
	Run: func(cmd *cobra.Command, args []string) {
		r, err := makeResolver()
		if err != nil {
			log.Fatal(err)
		}
		ctx, cancel := signalContext()
		defer cancel()
		if err = doReverse(ctx, r, args, os.Stdin, cmd.OutOrStdout()); err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(reverseCmd)
}
