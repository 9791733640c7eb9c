package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the CMS.
type HTTPConfig struct {
	// Timeout bounds each request. A timeout is reported like any other
	// transport failure.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cms-seeder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// Retries is the number of times a request answered with HTTP 429 is
	// retried. Zero sends each request exactly once.
	Retries int `json:"retries" yaml:"retries" mapstructure:"retries"`
}

// Endpoints are the creation endpoints, resolved against the base URL.
type Endpoints struct {
	Applications  string `json:"applications" yaml:"applications" mapstructure:"applications"`
	Pages         string `json:"pages" yaml:"pages" mapstructure:"pages"`
	ContentBlocks string `json:"content_blocks" yaml:"content_blocks" mapstructure:"content_blocks"`
}

// DefaultEndpoints returns the endpoint paths of a stock CMS installation.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Applications:  "/api/applications",
		Pages:         "/api/pages",
		ContentBlocks: "/api/content-blocks",
	}
}

// WithDefaults fills empty endpoint paths from DefaultEndpoints.
func (e Endpoints) WithDefaults() Endpoints {
	d := DefaultEndpoints()
	if e.Applications == "" {
		e.Applications = d.Applications
	}
	if e.Pages == "" {
		e.Pages = d.Pages
	}
	if e.ContentBlocks == "" {
		e.ContentBlocks = d.ContentBlocks
	}
	return e
}

// PublishConfig holds settings for a publish run.
type PublishConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the CMS root (e.g. "https://cms.example.com").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Token is the bearer credential sent in the Authorization header.
	Token string `json:"-" yaml:"-" mapstructure:"token"`

	// DryRun disables all network calls and synthesizes identifiers.
	DryRun bool `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`

	Endpoints Endpoints `json:"endpoints" yaml:"endpoints" mapstructure:"endpoints"`
}
