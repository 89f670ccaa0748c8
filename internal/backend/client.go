package backend

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
)

// Doer is the part of an HTTP client the backend needs. Both
// tls_client.HttpClient and *http.Client from fhttp satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	Profile        string
	TimeoutSeconds int
	UserID         string
	// HTTPClient replaces the tls-client transport when set.
	HTTPClient Doer
}

type Client struct {
	httpClient Doer
	endpoint   string
	userAgent  string
	userID     string
}

func NewClient(endpoint string, opts Options) (*Client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("backend endpoint is required")
	}

	if opts.Profile == "" {
		opts.Profile = "chrome_120"
	}
	profile, err := LookupProfile(opts.Profile)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = tls_client.NewHttpClient(tls_client.NewNoopLogger(), ClientOptions(profile, opts.TimeoutSeconds)...)
		if err != nil {
			return nil, fmt.Errorf("failed to create http client: %w", err)
		}
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		userAgent:  UserAgentFor(profile),
		userID:     opts.UserID,
	}, nil
}

func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate sends one prompt and returns the base64 PNG. Failures are either a
// *ServerError or a *TransportError.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := BuildGenerateBody(prompt, c.userID)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportErrorf("failed to read response body: %w", err)
	}

	image, err := ParseGenerateResponse(resp.StatusCode, raw)
	if err != nil {
		log.Printf("[Backend] %s returned status %d: %v", c.endpoint, resp.StatusCode, err)
		return "", err
	}

	log.Printf("[Backend] %s returned image (%d base64 chars)", c.endpoint, len(image))
	return image, nil
}
