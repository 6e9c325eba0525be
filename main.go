package main

import (
	"github.com/joho/godotenv"

	"triagem/cmd"
)

func main() {
	// Optional .env for local development; real deployments set env vars
	// directly.
	_ = godotenv.Load()

	cmd.Execute()
}
