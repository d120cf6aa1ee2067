package main

import (
	"os"

	"github.com/yigit/facalloc/internal/pkg/logger" // Still needed for initial error logging
	"github.com/yigit/facalloc/internal/server"
)

// @title Faculty Allocation API
// @version 1.0
// @description API for merit-ordered allocation of students to faculty mentors

// @contact.name API Support
// @contact.email support@facalloc.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize the server with all its dependencies
	srv, err := server.NewServer()
	if err != nil {
		// Use the default logger setup by the logger package's init
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run the server (this blocks until shutdown signal)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
