package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/banklens-dev/banklens/internal/commands"
)

func main() {
	// Best-effort: credentials like GEMINI_API_KEY may live in a local
	// .env file instead of the environment.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
