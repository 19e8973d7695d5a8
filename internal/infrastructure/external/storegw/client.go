// Package storegw talks to the platform store gateway: the external service
// that owns the product catalog, entitlements and transaction handling.
// This package only consumes it; no receipts are verified here.
package storegw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/raceday/pro-upgrade/internal/domain/entity"
)

// DefaultTimeout for gateway requests
const DefaultTimeout = 30 * time.Second

// Config represents store gateway connection settings
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is an HTTP client for the store gateway
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new store gateway client
func NewClient(config Config, logger *zap.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

type productPayload struct {
	ID           string `json:"id"`
	DisplayName  string `json:"display_name"`
	DisplayPrice string `json:"display_price"`
}

type catalogResponse struct {
	Products []productPayload `json:"products"`
}

type entitlementResponse struct {
	Pro bool `json:"pro"`
}

type purchaseRequest struct {
	ProductID string `json:"product_id"`
}

type transactionPayload struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

type purchaseResponse struct {
	Outcome     string              `json:"outcome"`
	Error       string              `json:"error,omitempty"`
	Transaction *transactionPayload `json:"transaction,omitempty"`
}

type restoreResponse struct {
	Pro         bool                `json:"pro"`
	Transaction *transactionPayload `json:"transaction,omitempty"`
}

// FetchCatalog returns the current product catalog.
func (c *Client) FetchCatalog(ctx context.Context) ([]entity.Product, error) {
	var resp catalogResponse
	if err := c.do(ctx, http.MethodGet, "/v1/catalog", nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	products := make([]entity.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, entity.Product{
			ID:           p.ID,
			DisplayName:  p.DisplayName,
			DisplayPrice: p.DisplayPrice,
		})
	}
	return products, nil
}

// FetchEntitlement returns whether the user currently owns Pro.
func (c *Client) FetchEntitlement(ctx context.Context, userID string) (bool, error) {
	var resp entitlementResponse
	path := fmt.Sprintf("/v1/users/%s/entitlement", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return false, fmt.Errorf("fetch entitlement: %w", err)
	}
	return resp.Pro, nil
}

// Purchase asks the gateway to run a purchase and blocks until it settles.
func (c *Client) Purchase(ctx context.Context, userID, productID string) (entity.PurchaseResult, *entity.TransactionState, error) {
	var resp purchaseResponse
	path := fmt.Sprintf("/v1/users/%s/purchase", userID)
	if err := c.do(ctx, http.MethodPost, path, purchaseRequest{ProductID: productID}, &resp); err != nil {
		return entity.PurchaseResult{}, nil, fmt.Errorf("purchase: %w", err)
	}

	result, err := mapOutcome(resp.Outcome, resp.Error)
	if err != nil {
		return entity.PurchaseResult{}, nil, err
	}
	return result, mapTransaction(resp.Transaction), nil
}

// Restore asks the gateway to restore completed purchases and returns the
// entitlement afterwards.
func (c *Client) Restore(ctx context.Context, userID string) (bool, *entity.TransactionState, error) {
	var resp restoreResponse
	path := fmt.Sprintf("/v1/users/%s/restore", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return false, nil, fmt.Errorf("restore: %w", err)
	}
	return resp.Pro, mapTransaction(resp.Transaction), nil
}

func mapOutcome(outcome, errText string) (entity.PurchaseResult, error) {
	var reason error
	if errText != "" {
		reason = errors.New(errText)
	}

	switch entity.PurchaseOutcome(outcome) {
	case entity.PurchaseSuccess, entity.PurchaseUserCancelled, entity.PurchasePending:
		return entity.PurchaseResult{Outcome: entity.PurchaseOutcome(outcome)}, nil
	case entity.PurchaseFailed:
		return entity.PurchaseResult{Outcome: entity.PurchaseFailed, Err: reason}, nil
	default:
		return entity.PurchaseResult{}, fmt.Errorf("unknown purchase outcome %q", outcome)
	}
}

func mapTransaction(tx *transactionPayload) *entity.TransactionState {
	if tx == nil {
		return nil
	}
	state := &entity.TransactionState{Phase: entity.TransactionPhase(tx.State)}
	if tx.Error != "" {
		state.Err = errors.New(tx.Error)
	}
	return state
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.APIKey != "" {
		req.Header.Set("X-Api-Key", c.config.APIKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("store gateway call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s", resp.StatusCode, bytes.TrimSpace(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
