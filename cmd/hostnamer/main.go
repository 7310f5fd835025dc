package main

// DCSO hostnamer
// Copyright (c) 2017, 2026, DCSO GmbH

import (
	cmd "github.com/DCSO/hostnamer/cmd/hostnamer/cmds"
)

func main() {
	cmd.Execute()
}
