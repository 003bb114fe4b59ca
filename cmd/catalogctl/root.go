package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/utafrali/storefront/internal/upstream"
	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/logger"
)

// envDefaults are read from the environment before flags are parsed.
type envDefaults struct {
	BaseURL  string        `env:"UPSTREAM_BASE_URL" envDefault:"https://api.buzfi.com"`
	Timeout  time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
	LogLevel string        `env:"LOG_LEVEL" envDefault:"warn"`
}

// options holds the global flags shared by every subcommand.
type options struct {
	baseURL  string
	timeout  time.Duration
	output   string
	logLevel string

	client *upstream.Client
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	defaults := envDefaults{}
	if err := pkgconfig.Load(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring environment: %v\n", err)
		defaults = envDefaults{BaseURL: "https://api.buzfi.com", Timeout: 30 * time.Second, LogLevel: "warn"}
	}

	opts := &options{}
	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Inspect the commerce API through the storefront normalizers",
		Long: `catalogctl fetches product lists and product details from the commerce API,
normalizes them the same way the storefront does, and prints the result.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", defaults.BaseURL, "Commerce API base URL (or set UPSTREAM_BASE_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaults.Timeout, "Request timeout")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", formatTable, "Output format: table, json or yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level for diagnostics on stderr")

	root.AddCommand(newProductsCmd(opts))
	root.AddCommand(newProductCmd(opts))
	return root
}

func (o *options) init(cmd *cobra.Command) error {
	switch o.output {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", o.output)
	}

	base := strings.TrimRight(o.baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("base URL %q must start with http:// or https://", o.baseURL)
	}

	o.logger = logger.NewWithWriter("catalogctl", o.logLevel, cmd.ErrOrStderr())
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = o.timeout
	httpCfg.UserAgent = "catalogctl/1.0"
	o.client = upstream.NewClient(base, httpclient.New(httpCfg), o.logger)
	return nil
}
