/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/amangit2224/medlens/cmd"
	"github.com/amangit2224/medlens/logging"
)

func main() {
	logger := logging.Logger(logging.SourceApp)

	app := &cli.Command{
		Name:  "medlens",
		Usage: "MedLens - lab report history and trends",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdMigrate,
			cmd.CmdTrends,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("Command failed", "error", err)
	}
}
