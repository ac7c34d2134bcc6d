// Package api is the HTTP implementation of the remote commerce API
// contracts. One Client implements every per-concern interface in
// internal/domain/service; all calls share the same base URL, bearer token
// source and request-ID discipline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"bijou/config"
	"bijou/internal/appctx"
	domainerrors "bijou/internal/domain/errors"
	"bijou/internal/domain/repository"

	"github.com/pkg/errors"
)

// TokenSource supplies the bearer credential for outgoing requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StoreTokenSource reads the token from the persisted session store, so the
// client always replays whatever credential the auth manager last stored.
type StoreTokenSource struct {
	store repository.SessionStore
}

// NewStoreTokenSource is the constructor for StoreTokenSource.
func NewStoreTokenSource(store repository.SessionStore) *StoreTokenSource {
	return &StoreTokenSource{store: store}
}

// Token returns the persisted bearer string, or empty when signed out.
func (s *StoreTokenSource) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, repository.KeyToken)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read session token")
	}

	return token, nil
}

// Client talks to the remote commerce API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
}

// NewClient is the constructor for Client.
func NewClient(cfg *config.Config, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: cfg.API.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.API.Timeout,
		},
		tokens: tokens,
		logger: logger,
	}
}

// do performs one JSON round-trip. body and out may be nil. Failures come
// back as domain errors: the transport layer never leaks raw HTTP statuses
// into the managers.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "failed to encode %s %s request", method, path)
		}
		payload = bytes.NewReader(raw)
	}

	ctx, requestID := appctx.EnsureRequestID(ctx)

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return errors.Wrapf(err, "failed to build %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(appctx.HeaderXRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Commerce API unreachable",
			slog.String("method", method), slog.String("path", path), slog.Any("error", err))

		return domainerrors.NewRemoteCallError(err, method+" "+path)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapError(resp, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response", method, path)
	}

	return nil
}

// doRaw is like do but hands the response body back undecoded, for payloads
// whose shape the caller resolves itself (profile envelopes).
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, error) {
	var raw json.RawMessage
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// apiErrorBody is the error envelope the commerce API uses.
type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// codeErrors maps the API's business error codes onto domain errors.
var codeErrors = map[string]*domainerrors.BaseError{
	"INVALID_CREDENTIALS": domainerrors.ErrInvalidCredentials,
	"COUPON_INVALID":      domainerrors.ErrCouponInvalid,
	"COUPON_EXPIRED":      domainerrors.ErrCouponExpired,
	"PRODUCT_NOT_FOUND":   domainerrors.ErrProductNotFound,
	"OUT_OF_STOCK":        domainerrors.ErrOutOfStock,
}

// statusErrors is the fallback mapping when the body carries no known code.
var statusErrors = map[int]*domainerrors.BaseError{
	http.StatusBadRequest:          domainerrors.ErrValidation,
	http.StatusUnauthorized:        domainerrors.ErrSessionExpired,
	http.StatusForbidden:           domainerrors.ErrAdminOnly,
	http.StatusNotFound:            domainerrors.ErrNotFound,
	http.StatusGone:                domainerrors.ErrCouponExpired,
	http.StatusUnprocessableEntity: domainerrors.ErrValidation,
}

func (c *Client) mapError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body apiErrorBody
	_ = json.Unmarshal(raw, &body)

	c.logger.Debug("Commerce API error response",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("code", body.Error.Code))

	if mapped, ok := codeErrors[body.Error.Code]; ok {
		return mapped.WithDetails(body.Error.Message)
	}
	if mapped, ok := statusErrors[resp.StatusCode]; ok {
		if body.Error.Message != "" {
			return mapped.WithDetails(body.Error.Message)
		}

		return mapped
	}

	return domainerrors.ErrRemoteUnavailable.WithDetails(
		method + " " + path + " returned " + resp.Status)
}
