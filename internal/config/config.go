// Package config loads the process configuration: an optional HCL file,
// built-in defaults, and environment overrides for the Notion credentials.
// The resulting Config is constructed once at startup and passed by
// reference; nothing mutates it afterwards.
package config

import (
	"fmt"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Environment variables that always override file values.
const (
	EnvNotionToken  = "NOTION_TOKEN"
	EnvNotionPageID = "NOTION_PAGE_ID"
)

// Config is the top-level configuration for the Arbor server.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `hcl:"listen_addr,optional"`

	// Notion configures the vendor API client.
	Notion *Notion `hcl:"notion,block"`
}

// Notion holds the vendor API settings.
type Notion struct {
	// BaseURL is the Notion API base URL.
	BaseURL string `hcl:"base_url,optional"`

	// Token is the integration bearer token. Usually supplied via the
	// NOTION_TOKEN environment variable rather than the config file.
	Token string `hcl:"token,optional"`

	// PageID is the default parent page new databases are created under.
	// Usually supplied via NOTION_PAGE_ID.
	PageID string `hcl:"page_id,optional"`

	// MaxRetries is the number of retries after a failed vendor call.
	MaxRetries int `hcl:"max_retries,optional"`

	// RetryDelay is the fixed pause between attempts, as a duration
	// string (e.g. "2s").
	RetryDelay string `hcl:"retry_delay,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ListenAddr: "127.0.0.1:8000",
		Notion: &Notion{
			BaseURL:    "https://api.notion.com",
			MaxRetries: 1,
			RetryDelay: "2s",
		},
	}
}

// Load builds the configuration from defaults, the optional HCL file at
// path, and the environment, in that order of precedence (lowest first).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		var file Config
		if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
			return nil, fmt.Errorf("error decoding config file: %w", err)
		}
		cfg.merge(&file)
	}

	if v := os.Getenv(EnvNotionToken); v != "" {
		cfg.Notion.Token = v
	}
	if v := os.Getenv(EnvNotionPageID); v != "" {
		cfg.Notion.PageID = v
	}

	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.ListenAddr != "" {
		c.ListenAddr = o.ListenAddr
	}
	if o.Notion == nil {
		return
	}
	if o.Notion.BaseURL != "" {
		c.Notion.BaseURL = o.Notion.BaseURL
	}
	if o.Notion.Token != "" {
		c.Notion.Token = o.Notion.Token
	}
	if o.Notion.PageID != "" {
		c.Notion.PageID = o.Notion.PageID
	}
	if o.Notion.MaxRetries != 0 {
		c.Notion.MaxRetries = o.Notion.MaxRetries
	}
	if o.Notion.RetryDelay != "" {
		c.Notion.RetryDelay = o.Notion.RetryDelay
	}
}

// Validate checks that the configuration is complete enough to start the
// server.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.ListenAddr, validation.Required),
		validation.Field(&c.Notion, validation.Required),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(c.Notion,
		validation.Field(&c.Notion.BaseURL, validation.Required),
		validation.Field(&c.Notion.Token,
			validation.Required.Error(EnvNotionToken+" is required")),
		validation.Field(&c.Notion.PageID,
			validation.Required.Error(EnvNotionPageID+" is required")),
		validation.Field(&c.Notion.MaxRetries, validation.Min(0)),
		validation.Field(&c.Notion.RetryDelay, validation.By(validDuration)),
	)
}

// RetryDelayDuration returns the parsed retry delay. Validate rejects
// malformed values; a config that skipped Validate parses to zero here and
// the Notion client applies its own default.
func (n *Notion) RetryDelayDuration() time.Duration {
	d, _ := time.ParseDuration(n.RetryDelay)
	return d
}

func validDuration(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := time.ParseDuration(s); err != nil {
		return fmt.Errorf("must be a valid duration: %w", err)
	}
	return nil
}
