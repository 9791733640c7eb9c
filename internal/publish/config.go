// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/pdiddy/cms-seeder/pkg/types"
)

const (
	// DefaultTimeout bounds each creation request.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when no user agent is configured.
	DefaultUserAgent = "cms-seeder/0.1"

	maxRetries = 10
)

// WithDefaults fills unset timeout, user agent, and endpoints.
func WithDefaults(cfg types.PublishConfig) types.PublishConfig {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	cfg.Endpoints = cfg.Endpoints.WithDefaults()
	return cfg
}

// ValidateConfig checks cfg before any request is made. A dry run needs no
// base URL or token.
func ValidateConfig(cfg types.PublishConfig) error {
	errs := validation.Errors{}

	if !cfg.DryRun {
		if strings.TrimSpace(cfg.BaseURL) == "" {
			errs["base_url"] = validation.NewError("publish.base_url_required", "base URL is required")
		} else if u, err := url.Parse(cfg.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs["base_url"] = validation.NewError("publish.base_url_invalid", "base URL must be absolute, e.g. https://cms.example.com")
		}
		if strings.TrimSpace(cfg.Token) == "" {
			errs["token"] = validation.NewError("publish.token_required", "API token is required")
		}
	}

	if err := validation.Validate(cfg.Timeout, validation.Min(time.Duration(0))); err != nil {
		errs["timeout"] = err
	}
	if err := validation.Validate(cfg.Retries, validation.Min(0), validation.Max(maxRetries)); err != nil {
		errs["retries"] = err
	}

	for key, endpoint := range map[string]string{
		"endpoints.applications":   cfg.Endpoints.Applications,
		"endpoints.pages":          cfg.Endpoints.Pages,
		"endpoints.content_blocks": cfg.Endpoints.ContentBlocks,
	} {
		if strings.TrimSpace(endpoint) == "" {
			errs[key] = validation.NewError("publish.endpoint_required", "endpoint path is required")
		}
	}

	if len(errs) > 0 {
		return wrapConfigError(errs)
	}
	return nil
}
