package main

import (
	"context"

	"github.com/autocompare/autocompare/internal/cli"
	"github.com/autocompare/autocompare/internal/config"
	"github.com/autocompare/autocompare/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewFileLogger(cfg.LogFile)

	app := cli.NewApp(cfg, log)
	app.Run(ctx)

}
