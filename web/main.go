package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	modelsDir := flag.String("models-dir", "models", "Directory of models offered by the mesh scene")
	staticDir := flag.String("static-dir", "web/static", "Directory of the web interface files")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, *modelsDir, *staticDir)

	log.Printf("Whitted Raytracer Web Server")
	log.Printf("Visit http://localhost:%d to start rendering", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
