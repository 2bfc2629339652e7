package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lockstake/internal/buildinfo"
	"github.com/dmitrijs2005/lockstake/internal/server"
	"github.com/dmitrijs2005/lockstake/internal/server/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
