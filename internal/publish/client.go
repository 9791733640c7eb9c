// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/cms-seeder/internal/httputil"
	"github.com/pdiddy/cms-seeder/pkg/types"
)

// Creator creates one CMS record at endpoint and returns the identifier the
// CMS assigned to it.
type Creator interface {
	Create(ctx context.Context, endpoint string, payload any) (int, error)
}

// StatusError reports a non-2xx response from the CMS.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("CMS returned HTTP %d", e.StatusCode)
}

// errMissingID is returned when a 2xx response carries no data.id.
var errMissingID = errors.New("CMS response has no data.id")

// RESTClient creates records with bearer-authenticated JSON POST requests.
type RESTClient struct {
	Client    *http.Client
	BaseURL   string
	Token     string
	UserAgent string
	Retries   int
}

// NewRESTClient builds a RESTClient whose HTTP client enforces cfg.Timeout.
func NewRESTClient(cfg types.PublishConfig) *RESTClient {
	return &RESTClient{
		Client:    &http.Client{Timeout: cfg.Timeout},
		BaseURL:   cfg.BaseURL,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
		Retries:   cfg.Retries,
	}
}

// createdResponse is the body of a successful creation call.
type createdResponse struct {
	Data *struct {
		ID *int `json:"id"`
	} `json:"data"`
}

// Create POSTs payload to endpoint, resolved against BaseURL.
func (c *RESTClient) Create(ctx context.Context, endpoint string, payload any) (int, error) {
	target, err := httputil.ResolveURL(c.BaseURL, endpoint)
	if err != nil {
		return 0, err
	}

	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, target, c.Token, c.UserAgent, payload)
	if err != nil {
		return 0, err
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.Retries)
	if err != nil {
		return 0, fmt.Errorf("POST %s: %w", target, err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return 0, &StatusError{StatusCode: resp.StatusCode, Body: httputil.ReadErrorBody(resp.Body)}
	}

	var created createdResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return 0, fmt.Errorf("parsing CMS response: %w", err)
	}
	if created.Data == nil || created.Data.ID == nil {
		return 0, errMissingID
	}
	return *created.Data.ID, nil
}
