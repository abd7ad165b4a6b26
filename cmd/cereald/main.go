package main

import (
	"context"
	"log"

	"github.com/mkragh/cereald/internal/server"
	"github.com/mkragh/cereald/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
