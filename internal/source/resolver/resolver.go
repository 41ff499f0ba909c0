package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	pkgsource "github.com/goliatone/go-argdoc/pkg/source"
)

// New constructs the Resolver for mode from pre-resolved options. Construction
// helpers live in the top-level argdoc package.
func New(mode pkgsource.Mode, options pkgsource.ResolverOptions) (pkgsource.Resolver, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch mode {
	case pkgsource.ModeLocal:
		if options.LocalPath == "" {
			return nil, errors.New("source resolver: local path is required")
		}
		return &Local{
			src:    pkgsource.Local(options.LocalPath),
			logger: logger,
		}, nil
	case pkgsource.ModeRemote:
		if options.CachePath == "" {
			return nil, errors.New("source resolver: cache path is required")
		}
		if options.RemoteURL == "" {
			return nil, errors.New("source resolver: remote url is required")
		}
		if _, err := url.ParseRequestURI(options.RemoteURL); err != nil {
			return nil, fmt.Errorf("source resolver: invalid remote url: %w", err)
		}
		return &Remote{
			cache:   pkgsource.Local(options.CachePath),
			remote:  pkgsource.Remote(options.RemoteURL),
			http:    httpClient(options.HTTPClient, options.RequestTimeout),
			timeout: options.RequestTimeout,
			logger:  logger,
		}, nil
	default:
		return nil, fmt.Errorf("source resolver: unsupported mode %q", mode)
	}
}

func httpClient(client *http.Client, timeout time.Duration) *http.Client {
	if client == nil {
		return cleanhttp.DefaultClient()
	}
	clone := *client
	if timeout > 0 && clone.Timeout == 0 {
		clone.Timeout = timeout
	}
	return &clone
}
