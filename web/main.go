package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raycaster/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	scenesDir := flag.String("scenes", "scenes", "Directory of .scene files to serve")
	flag.Parse()

	webServer := server.NewServer(*port, *scenesDir)

	log.Printf("Raycaster Web Server")
	log.Printf("Try http://localhost:%d/api/render?scene=default to render a built-in scene", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
