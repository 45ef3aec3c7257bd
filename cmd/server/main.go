package main

import (
	"context"
	"log"
	"net/http"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("initializing try-on service")
	app := InitializeApplication(ctx)

	firstRun, err := app.Settings.MarkFirstRun(ctx)
	if err != nil {
		log.Printf("error ocurred when reading first run flag: %s", err)
	}
	if firstRun {
		log.Println("first run: set the API key with PUT /settings/credential and the user photo with PUT /settings/photo")
	}

	log.Println("registering http handlers")
	router := newRouter(app.Config, app.TryOn, app.Settings)

	log.Printf("listening on %s", app.Config.ListenAddr)
	log.Fatal(http.ListenAndServe(app.Config.ListenAddr, router))
}
