package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"tesoro/config"
	"tesoro/session"
	"tesoro/transport"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := session.NewHub(cfg)
	go hub.Run(ctx)

	color.Green("[Server]: matchmaking hub running (quorum %d, match cap %d)", cfg.MinPlayers, cfg.MaxMatches)
	color.Cyan("[Server]: listening on %s (ws endpoint: /ws)", cfg.Addr)

	r := transport.NewRouter(hub)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
