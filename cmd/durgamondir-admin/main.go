// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Command durgamondir-admin manages staff accounts from the shell:
// listing them, adding one, resetting a password or a lost authenticator.
package main

import (
	"errors"
	"log/slog"
	"os"

	"durgamondir/internal/config"
	"durgamondir/internal/database"
	"durgamondir/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	cli := &commandLine{users: store.NewUserStore(db), out: os.Stdout}
	if err := cli.run(os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			slog.Error("command failed", "error", err)
		}
		db.Close()
		os.Exit(1)
	}
}
