package main

import (
	"log"
	"os"

	"github.com/DC111-ui/hss-storage-platform/lite"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	router := lite.NewRouter(lite.NewStore())
	log.Printf("HSS lite API listening on http://localhost:%s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("lite: server failed: %v", err)
	}
}
