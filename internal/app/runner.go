package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/samvad-hq/yelp-go/internal/config"
	"github.com/samvad-hq/yelp-go/internal/logger"
	"github.com/samvad-hq/yelp-go/pkg/auth"
	"github.com/samvad-hq/yelp-go/pkg/httpclient"
	"github.com/samvad-hq/yelp-go/pkg/yelp"
	"gopkg.in/yaml.v3"
)

// Runner wires config, the OAuth signer and the API client and executes one
// CLI command per Run.
type Runner struct {
	cfg    *config.Config
	client *yelp.Client
	log    logger.Logger
}

// NewRunner builds a runner from cfg. Extra client options are applied after
// the ones derived from cfg.
func NewRunner(cfg *config.Config, log logger.Logger, opts ...yelp.Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	signer, err := auth.NewOAuth1(cfg.Credentials())
	if err != nil {
		return nil, fmt.Errorf("build authenticator: %w", err)
	}

	clientOpts := []yelp.Option{
		yelp.WithHTTPClient(httpclient.NewRestyClient(httpclient.Options{Timeout: cfg.HTTPTimeout})),
		yelp.WithBaseURL(cfg.BaseURL),
		yelp.WithLogger(log),
	}
	client, err := yelp.NewClient(signer, append(clientOpts, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	return &Runner{cfg: cfg, client: client, log: log}, nil
}

// Run executes the command named by args[0] and renders its response to out.
func (r *Runner) Run(ctx context.Context, args []string, out io.Writer) error {
	if r == nil || r.client == nil {
		return fmt.Errorf("runner is not initialized")
	}
	if len(args) == 0 {
		return fmt.Errorf("missing command (expected one of %s)", strings.Join(commandNames(), ", "))
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("unknown command %q (expected one of %s)", args[0], strings.Join(commandNames(), ", "))
	}

	resp, err := cmd.run(ctx, r.client, args[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	r.log.DebugObj("command completed", "command", args[0])

	return render(out, r.cfg.OutputFormat, resp)
}

func render(out io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}
