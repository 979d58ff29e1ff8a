package main

import (
	"fmt"
	"log"
	"net/http"

	"hostbuddy-backend/internal/config"
	"hostbuddy-backend/internal/server"
)

func main() {
	cfg := config.Load()
	s := server.NewServer(cfg)
	addr := ":" + cfg.Port
	fmt.Printf("HostBuddy server listening on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, s.Router()))
}
