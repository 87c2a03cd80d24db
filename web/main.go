package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-band-raytracer/pkg/scene"
	"github.com/df07/go-band-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	sceneFile := flag.String("scene", "", "JSON scene file (default: built-in scene)")
	flag.Parse()

	s := scene.NewReferenceScene()
	if *sceneFile != "" {
		loaded, err := scene.LoadFile(*sceneFile)
		if err != nil {
			log.Printf("Error loading scene: %v", err)
			os.Exit(1)
		}
		s = loaded
	}

	webServer := server.NewServer(*port, s)

	log.Printf("Band Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?format=png", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
