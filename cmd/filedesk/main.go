package main

import (
	"os"

	"filedesk-backend/internal/client"
)

func main() {
	if err := client.Execute(); err != nil {
		os.Exit(1)
	}
}
