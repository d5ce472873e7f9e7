// Package container wires the service's components into a samber/do injector.
package container

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
)

type Options struct {
	Port           int    `default:"8000"                                       help:"Port to listen on; the PORT env var takes precedence" short:"p"`
	RedisAddr      string `default:"localhost:6379"                             help:"Redis server address"                                 short:"r"`
	CatalogURL     string `default:"https://api.freeapi.app/api/v1/public/books" help:"Book catalog URL"`
	CatalogTimeout int    `default:"10"                                         help:"Book catalog request timeout in seconds"`
	LogFormat      string `default:"console"                                    enum:"console,json"                                         help:"Log encoding"`
	Events         bool   `default:"false"                                      help:"Publish domain events to Redis streams"`
	DatabaseURL    string `default:""                                           help:"Postgres DSN for the event consumer; empty logs events only"`
}

// Addr returns the listen address.
func (o *Options) Addr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}

	return fmt.Sprintf(":%d", o.Port)
}

// Timeout returns the catalog request timeout.
func (o *Options) Timeout() time.Duration {
	return time.Duration(o.CatalogTimeout) * time.Second
}

// NewLogger builds the process logger for the given encoding.
func NewLogger(format string) (*zap.Logger, error) {
	switch format {
	case "json":
		return zap.NewProduction()
	case "console", "":
		return zap.NewDevelopment()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
