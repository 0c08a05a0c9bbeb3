// Command minigammond runs the minigammon session API server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yourusername/minigammon/pkg/api"
)

const version = "0.1.0"

func main() {
	cfg, err := api.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	// Flags override the environment.
	host := flag.String("host", cfg.Host, "Host to bind to (use 0.0.0.0 for all interfaces)")
	port := flag.Int("port", cfg.Port, "Port to listen on")
	readTimeout := flag.Duration("read-timeout", cfg.ReadTimeout, "HTTP read timeout")
	writeTimeout := flag.Duration("write-timeout", cfg.WriteTimeout, "HTTP write timeout")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Parse()

	if *showVersion {
		fmt.Printf("minigammond v%s\n", version)
		os.Exit(0)
	}

	cfg.Host = *host
	cfg.Port = *port
	cfg.ReadTimeout = *readTimeout
	cfg.WriteTimeout = *writeTimeout

	log.Printf("minigammond v%s", version)

	server := api.NewServer(cfg, version)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
