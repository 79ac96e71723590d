package main

import (
	"log"

	"github.com/mangomarket/onboard"
)

func main() {
	app, err := onboard.New()
	if err != nil {
		log.Fatalf("failed to build application: %v", err)
	}

	app.Run()
}
