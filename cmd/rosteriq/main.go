package main

import (
	"github.com/joho/godotenv"

	"rosteriq/internal/cli"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cli.Execute()
}
