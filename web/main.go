package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	config := server.DefaultConfig()

	port := flag.Int("port", config.Port, "Port to serve on")
	texture := flag.String("texture", "", "Image texture for textured scenes (required by the earth scene)")
	origins := flag.String("origins", "*", "Comma-separated list of allowed CORS origins")
	flag.Parse()

	config.Port = *port
	config.TexturePath = *texture
	config.AllowedOrigins = strings.Split(*origins, ",")

	webServer := server.NewServer(config)

	log.Printf("Path Tracer Web Server")
	log.Printf("Visit http://localhost:%d/api/scenes to list scenes", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
