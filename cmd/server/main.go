package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/JanHsuanChu/JournalAnalyzer/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	srv := server.NewServer()
	r := srv.SetupRouter()

	log.Printf("Starting journal analyzer API on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
