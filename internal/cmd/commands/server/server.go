package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chirpy-labs/arbor/internal/api"
	"github.com/chirpy-labs/arbor/internal/cmd/base"
	"github.com/chirpy-labs/arbor/internal/config"
	intsrv "github.com/chirpy-labs/arbor/internal/server"
	"github.com/chirpy-labs/arbor/pkg/notion"
)

type Command struct {
	*base.Command

	flagConfig string
	flagAddr   string
}

func (c *Command) Synopsis() string {
	return "Run the Arbor HTTP server"
}

func (c *Command) Help() string {
	return `Usage: arbor server [options]

  Runs the HTTP bridge that translates Chirpy table/row requests into
  Notion API calls. The Notion token and the default parent page are read
  from the NOTION_TOKEN and NOTION_PAGE_ID environment variables.

` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet("server")
	f.StringVar(&c.flagConfig, "config", "",
		"Path to an HCL configuration file")
	f.StringVar(&c.flagAddr, "addr", "",
		"Address to listen on (overrides the config file)")
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.Load(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if c.flagAddr != "" {
		cfg.ListenAddr = c.flagAddr
	}
	if err := cfg.Validate(); err != nil {
		c.UI.Error(fmt.Sprintf("invalid configuration: %v", err))
		return 1
	}

	log := c.Log.Named("server")

	nc, err := notion.NewClient(notion.Config{
		BaseURL:    cfg.Notion.BaseURL,
		Token:      cfg.Notion.Token,
		MaxRetries: cfg.Notion.MaxRetries,
		RetryDelay: cfg.Notion.RetryDelayDuration(),
		Logger:     c.Log,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating Notion client: %v", err))
		return 1
	}

	srv := intsrv.Server{
		Config: cfg,
		Notion: nc,
		Logger: log,
	}

	mux := http.NewServeMux()
	mux.Handle("/create_table", api.CreateTableHandler(srv))
	mux.Handle("/insert", api.InsertHandler(srv))
	mux.Handle("/update_table", api.UpdateTableHandler(srv))
	mux.Handle("/get_rows", api.GetRowsHandler(srv))
	mux.Handle("/health", api.HealthHandler())
	mux.Handle("/openapi.json", api.OpenAPIHandler())

	handler := api.RequestLogger(log, api.CORS(mux))

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	log.Info("arbor server listening", "addr", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		return 1
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error("error during shutdown", "error", err)
			return 1
		}
	}

	return 0
}
