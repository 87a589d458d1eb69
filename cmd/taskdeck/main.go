package main

import (
	"fmt"
	"os"

	"taskdeck/internal/config"
	"taskdeck/internal/session"
	"taskdeck/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	store, err := session.Open(cfg.SessionDBPath)
	if err != nil {
		fmt.Printf("failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := ui.Run(cfg, store); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}
