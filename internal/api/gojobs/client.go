// Package gojobs is the client for the Korean public-institution recruitment
// registry (apis.data.go.kr). It is the single parsing boundary for the
// registry's loosely typed JSON.
package gojobs

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"recruit-match/internal/errs"
)

// Client for requests to the recruitment registry API.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *zap.Logger
}

// New builds a client. The service key is the registry's access credential;
// without it no request can succeed, so its absence is a configuration
// error, not an upstream one.
func New(baseURL, serviceKey string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(serviceKey) == "" {
		return nil, &errs.ConfigurationError{Key: "RECRUITMENT_SERVICE_KEY"}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// get performs one GET request. No retries here: the sync and match layers
// own the retry decision.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path + "?serviceKey=" + c.encodedKey()
	if len(params) > 0 {
		fullURL += "&" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("registry API error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, &errs.UpstreamError{Status: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("successful registry request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

// encodedKey escapes the service key unless it already arrived pre-encoded
// (data.go.kr hands out both forms).
func (c *Client) encodedKey() string {
	if strings.Contains(c.serviceKey, "%") {
		return c.serviceKey
	}
	return url.QueryEscape(c.serviceKey)
}
