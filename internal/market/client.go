package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"tarkov-price-sync/internal/config"
	"tarkov-price-sync/internal/logger"
	"tarkov-price-sync/internal/metrics"
)

const (
	BaseBackoff = 100 * time.Millisecond
	MaxBackoff  = 2 * time.Second
)

// Client fetches the tracked item's current base price from the tarkov.dev
// GraphQL API.
type Client struct {
	apiURL         string
	httpClient     *http.Client
	userAgent      string
	gameMode       string
	itemName       string
	requestTimeout time.Duration
	maxAttempts    uint
}

// NewClient creates a market client from the service configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiURL:         cfg.APIURL,
		httpClient:     &http.Client{},
		userAgent:      cfg.UserAgent,
		gameMode:       cfg.GameMode,
		itemName:       cfg.ItemName,
		requestTimeout: cfg.RequestTimeout(),
		maxAttempts:    uint(cfg.MaxFetchAttempts),
	}
}

// FetchPrice issues one request per attempt and resolves to either a
// positive, floored price or a classified error. Only transport and timeout
// failures are retried, and only when the configured attempt budget allows
// more than one request.
func (c *Client) FetchPrice(ctx context.Context) (int64, error) {
	var price int64

	retryErr := retry.Do(
		func() error {
			reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
			defer cancel()

			p, err := c.doFetch(reqCtx)
			if err != nil {
				return err
			}

			price = p
			return nil
		},
		retry.Attempts(c.maxAttempts),
		retry.Delay(BaseBackoff),
		retry.MaxDelay(MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.FetchRetries.Inc()
			logger.WithCycle(ctx).WithFields(map[string]interface{}{
				"attempt":      n + 1,
				"max_attempts": c.maxAttempts,
				"error":        err.Error(),
			}).Warn("Market API retry attempt")
		}),
	)

	metrics.FetchRequestsTotal.WithLabelValues(Classify(retryErr)).Inc()

	if retryErr != nil {
		return 0, retryErr
	}

	return price, nil
}

// doFetch performs the actual HTTP request for the tracked item's price.
func (c *Client) doFetch(ctx context.Context) (int64, error) {
	log := logger.WithCycle(ctx)

	body, err := json.Marshal(graphQLRequest{Query: c.query()})
	if err != nil {
		return 0, fmt.Errorf("%w: failed to encode query: %v", ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	log.WithFields(map[string]interface{}{
		"url":       c.apiURL,
		"item_name": c.itemName,
		"game_mode": c.gameMode,
	}).Debug("Requesting base price from market API")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)
	metrics.FetchRequestDuration.Observe(requestDuration.Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.WithField("timeout_ms", c.requestTimeout.Milliseconds()).
				Warn("Market API request aborted after timeout")
			return 0, fmt.Errorf("%w: aborted after %s", ErrTimeout, c.requestTimeout)
		}
		log.WithError(err).Warn("Market API request failed in transport")
		return 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status_code", resp.StatusCode).Warn("Market API returned non-OK status")
		return 0, fmt.Errorf("%w: HTTP %d", ErrTransport, resp.StatusCode)
	}

	var itemsResp itemsResponse
	if err := json.NewDecoder(resp.Body).Decode(&itemsResp); err != nil {
		log.WithError(err).Warn("Market API response body did not parse")
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if len(itemsResp.Errors) > 0 {
		msgs := make([]string, 0, len(itemsResp.Errors))
		for _, apiErr := range itemsResp.Errors {
			msgs = append(msgs, apiErr.Message)
		}
		log.WithField("api_errors", msgs).Warn("Market API reported query errors")
		return 0, fmt.Errorf("%w: %s", ErrBadResponse, strings.Join(msgs, ", "))
	}

	if itemsResp.Data == nil || len(itemsResp.Data.Items) == 0 {
		log.Warn("Market API response carried no items")
		return 0, fmt.Errorf("%w: no items for %q", ErrBadResponse, c.itemName)
	}

	basePrice := itemsResp.Data.Items[0].BasePrice
	if basePrice == nil {
		log.Warn("Market API item is missing its base price")
		return 0, fmt.Errorf("%w: basePrice missing for %q", ErrInvalidPrice, c.itemName)
	}
	if *basePrice <= 0 {
		log.WithField("base_price", *basePrice).Warn("Market API returned a non-positive base price")
		return 0, fmt.Errorf("%w: basePrice %v for %q", ErrInvalidPrice, *basePrice, c.itemName)
	}

	price := int64(math.Floor(*basePrice))

	log.WithFields(map[string]interface{}{
		"price":       price,
		"duration_ms": float64(requestDuration.Nanoseconds()) / 1e6,
	}).Debug("Market API returned a valid base price")

	return price, nil
}

// query builds the single GraphQL query this client ever sends.
func (c *Client) query() string {
	return fmt.Sprintf("query { items(gameMode: %s, name: %q) { basePrice } }", c.gameMode, c.itemName)
}

// isRetryableError restricts retries to transient failures.
func isRetryableError(err error) bool {
	return errors.Is(err, ErrTransport) || errors.Is(err, ErrTimeout)
}
