package main

import (
	"log"

	"github.com/ak-shop/api/app"
	"github.com/ak-shop/api/config"
)

func main() {
	cfg := &config.Config{}
	if err := config.LoadConfig(cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app.New(cfg).Run()
}
