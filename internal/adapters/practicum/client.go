package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/reviewbot/internal/domain"
	"github.com/bnema/reviewbot/internal/ports"
	"golang.org/x/net/http2"
)

const (
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	fromDateParam   = "from_date"
	maxBodyBytes    = 1 << 20
)

type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *slog.Logger
}

var _ ports.ReviewAPI = (*Client)(nil)

type Option func(*Client)

// WithHTTPClient replaces the default HTTP/2-capable client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(endpoint, token string, timeout time.Duration, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("parse review endpoint: %w", err)
	}

	httpClient, err := newHTTPClient(timeout)
	if err != nil {
		return nil, err
	}

	client := &Client{
		endpoint: endpoint,
		token:    token,
		http:     httpClient,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func newHTTPClient(timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if err := http2.ConfigureTransport(transport); err != nil {
		return nil, fmt.Errorf("configure http2 transport: %w", err)
	}

	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

func (c *Client) FetchStatuses(ctx context.Context, from domain.Checkpoint) (any, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, domain.RequestFailure(fmt.Errorf("create request: %w", err))
	}

	query := request.URL.Query()
	query.Set(fromDateParam, strconv.FormatInt(int64(from), 10))
	request.URL.RawQuery = query.Encode()
	request.Header.Set("Authorization", "OAuth "+c.token)
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return nil, domain.RequestFailure(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		c.logger.Error(c.endpoint+" is unavailable", "status", response.StatusCode)
		_, _ = io.Copy(io.Discard, io.LimitReader(response.Body, maxBodyBytes))
		return nil, domain.ServerUnavailable(response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return nil, domain.RequestFailure(fmt.Errorf("read response: %w", err))
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.MalformedResponse(fmt.Errorf("decode response: %w", err))
	}

	return payload, nil
}
