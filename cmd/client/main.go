package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/exchangeclient/internal/client/cli"
	"github.com/dmitrijs2005/exchangeclient/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.Bootstrap(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	app.Run(ctx)

}
