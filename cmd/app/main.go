package main

import (
	"context"
	"log"
	"net/http"

	"sccp/api"
	"sccp/config"
	"sccp/realtime"
	"sccp/session"
	"sccp/web"
)

func main() {
	cfg := config.Load()

	sessions := session.NewStore(session.NewFileStorage(cfg.TokenPath))
	if err := sessions.Initialize(); err != nil {
		log.Printf("restore session: %v", err)
	}

	client := api.NewClient(cfg.APIBaseURL, sessions)
	channel := realtime.NewChannel(cfg.WSBaseURL, sessions, client)
	if sessions.Current() != nil {
		channel.Start(context.Background())
	}

	server := web.NewServer(sessions, client, channel, cfg.CheckoutURLTemplate)

	log.Printf("serving on http://%s (api %s)", cfg.ListenAddr, cfg.APIBaseURL)
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		log.Fatal(err)
	}
}
