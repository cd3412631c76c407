package main

import (
	"os"

	"genesis-ai/backend/internal/app"
)

// @title        GenesisAI Backend API
// @version      1.0
// @description  Retrieval-augmented assistant: streamed answers, feedback and speech.
// @BasePath     /
func main() {
	os.Exit(app.Run())
}
