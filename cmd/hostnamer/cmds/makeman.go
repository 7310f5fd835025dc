package cmd

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func manHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "HOSTNAMER",
		Section: "1",
		Source:  "DCSO hostnamer " + version,
		Manual:  "hostnamer manual",
	}
}

// writeManPages writes one page per command, e.g. hostnamer-fill.1, into dir.
func writeManPages(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create man page directory: %w", err)
	}
	return doc.GenManTree(rootCmd, manHeader(), dir)
}

var mmanCmd = &cobra.Command{
	Use:   "makeman [options]",
	Short: "Create hostnamer man pages",
	Run: func(cmd *cobra.Command, args []string) {
		targetDir, err := cmd.Flags().GetString("dir")
		if err != nil {
			log.Fatal(err)
		}
		if err = writeManPages(targetDir); err != nil {
			log.Fatal(err)
		}
		log.WithField("dir", targetDir).Info("man pages written")
	},
}

func init() {
	rootCmd.AddCommand(mmanCmd)
	mmanCmd.Flags().StringP("dir", "d", ".", "target directory for man pages")
}
