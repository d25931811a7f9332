package server

import (
	"github.com/hashicorp/go-hclog"

	"github.com/chirpy-labs/arbor/internal/config"
	"github.com/chirpy-labs/arbor/pkg/notion"
)

// Server contains the server configuration.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// Notion is the vendor API client.
	Notion *notion.Client

	// Logger is the logger for the server.
	Logger hclog.Logger
}
