package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/storeconsole/internal/api"
	"github.com/dmitrijs2005/storeconsole/internal/client/models"
	"github.com/dmitrijs2005/storeconsole/internal/common"
)

// HTTPClient talks to the JSON HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	opts    options
}

// NewHTTPClient builds a client for baseURL. A bare "host:port" is treated
// as http://host:port.
func NewHTTPClient(baseURL string, opts ...Option) (*HTTPClient, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("server url %q has no host", baseURL)
	}

	o := buildOptions(opts)
	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{baseURL: strings.TrimRight(u.String(), "/"), http: hc, opts: o}, nil
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	var resp api.LoginResponse
	if err := c.do(ctx, http.MethodPost, api.PathLogin, loginRequest(creds), false, &resp); err != nil {
		return nil, err
	}
	return loginResult(&resp)
}

func (c *HTTPClient) Summary(ctx context.Context) (*models.Summary, error) {
	var resp api.Summary
	if err := c.do(ctx, http.MethodGet, api.PathSummary, nil, true, &resp); err != nil {
		return nil, err
	}
	return summary(&resp), nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.do(ctx, http.MethodGet, api.PathPing, nil, false, &resp); err != nil {
		return err
	}
	if resp.Status != api.StatusOK {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, auth bool, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.timeout)
	defer cancel()

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.opts.tokenSource(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	var e api.ErrorResponse
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&e)
	if e.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrBadResponse, resp.Status, e.Error)
	}
	return fmt.Errorf("%w: %s", ErrBadResponse, resp.Status)
}
