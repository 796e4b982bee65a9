// Package main starts the organization REST API backed by SQLite.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	orgapicmd "github.com/louisbranch/orgdash/internal/cmd/orgapi"
	"github.com/louisbranch/orgdash/internal/platform/config"
)

func main() {
	cfg, err := orgapicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	log.SetPrefix("[ORGAPI] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := orgapicmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
