package api

import (
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/chirpy-labs/arbor/internal/config"
	"github.com/chirpy-labs/arbor/internal/server"
	"github.com/chirpy-labs/arbor/pkg/notion"
)

// testServer builds a Server wired to a mock Notion endpoint with a fast
// retry delay.
func testServer(t *testing.T, notionURL string) server.Server {
	t.Helper()

	cfg := config.Default()
	cfg.Notion.BaseURL = notionURL
	cfg.Notion.Token = "secret-token"
	cfg.Notion.PageID = "parent-page"

	client, err := notion.NewClient(notion.Config{
		BaseURL:    notionURL,
		Token:      cfg.Notion.Token,
		RetryDelay: time.Millisecond,
		Logger:     hclog.NewNullLogger(),
	})
	require.NoError(t, err)

	return server.Server{
		Config: cfg,
		Notion: client,
		Logger: hclog.NewNullLogger(),
	}
}
