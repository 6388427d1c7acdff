// Package gateway is the presentation tier's client for the resource API.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/patch"
	"github.com/Domenick1991/flightdesk/internal/session"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiPrefix = "/api/v1/"

// StatusError is an answer the gateway has no mapping for.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

type Client struct {
	http     *resty.Client
	sessions session.Store
	log      *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, sessions session.Store, log *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, sessions: sessions, log: log}
}

// request carries the bearer token of the session in ctx, if any.
func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if token := session.TokenFrom(ctx); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func (c *Client) unexpected(resp *resty.Response) error {
	err := &StatusError{
		Method: resp.Request.Method,
		Path:   resp.Request.URL,
		Status: resp.StatusCode(),
		Body:   resp.String(),
	}
	c.log.Warn("gateway request failed",
		zap.String("method", err.Method),
		zap.String("path", err.Path),
		zap.Int("status", err.Status),
		zap.String("body", err.Body))
	return err
}

func resourcePath(r Resource, id ...int64) (string, error) {
	p, err := r.Path()
	if err != nil {
		return "", err
	}
	p = apiPrefix + p
	if len(id) > 0 {
		p += "/" + strconv.FormatInt(id[0], 10)
	}
	return p, nil
}

// List fetches one page. A 204 answer becomes an empty page carrying the
// requested page and size.
func List[T any](ctx context.Context, c *Client, r Resource, page, pageSize int, filters map[string]string) (*domain.Page[T], error) {
	path, err := resourcePath(r)
	if err != nil {
		return nil, err
	}

	var result domain.Page[T]
	resp, err := c.request(ctx).
		SetQueryParams(filters).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("pageSize", strconv.Itoa(pageSize)).
		SetResult(&result).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if result.Data == nil {
			result.Data = []T{}
		}
		return &result, nil
	case http.StatusNoContent:
		return domain.NewPage[T](nil, page, pageSize, 0), nil
	default:
		return nil, c.unexpected(resp)
	}
}

func Get[T any](ctx context.Context, c *Client, r Resource, id int64) (*T, error) {
	path, err := resourcePath(r, id)
	if err != nil {
		return nil, err
	}

	var result T
	resp, err := c.request(ctx).SetResult(&result).Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r, id, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &result, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s %d: %w", r, id, apperr.ErrNotFound)
	default:
		return nil, c.unexpected(resp)
	}
}

func Create[T any](ctx context.Context, c *Client, r Resource, entity *T) (*T, error) {
	path, err := resourcePath(r)
	if err != nil {
		return nil, err
	}

	var result T
	resp, err := c.request(ctx).SetBody(entity).SetResult(&result).Post(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", r, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, c.unexpected(resp)
	}
	return &result, nil
}

// Update replaces the entity. It reports false when the API refused with a
// conflict.
func (c *Client) Update(ctx context.Context, r Resource, id int64, entity any) (bool, error) {
	path, err := resourcePath(r, id)
	if err != nil {
		return false, err
	}
	resp, err := c.request(ctx).SetBody(entity).Put(path)
	if err != nil {
		return false, fmt.Errorf("update %s %d: %w", r, id, err)
	}
	return c.mutationOutcome(resp)
}

func (c *Client) Patch(ctx context.Context, r Resource, id int64, doc patch.Document) (bool, error) {
	path, err := resourcePath(r, id)
	if err != nil {
		return false, err
	}
	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json-patch+json").
		SetBody(doc).
		Patch(path)
	if err != nil {
		return false, fmt.Errorf("patch %s %d: %w", r, id, err)
	}
	if resp.StatusCode() == http.StatusOK {
		return true, nil
	}
	return c.mutationOutcome(resp)
}

// Delete reports false when the entity is still referenced.
func (c *Client) Delete(ctx context.Context, r Resource, id int64) (bool, error) {
	path, err := resourcePath(r, id)
	if err != nil {
		return false, err
	}
	resp, err := c.request(ctx).Delete(path)
	if err != nil {
		return false, fmt.Errorf("delete %s %d: %w", r, id, err)
	}
	return c.mutationOutcome(resp)
}

func (c *Client) mutationOutcome(resp *resty.Response) (bool, error) {
	switch resp.StatusCode() {
	case http.StatusNoContent:
		return true, nil
	case http.StatusConflict:
		return false, nil
	case http.StatusNotFound:
		return false, apperr.ErrNotFound
	default:
		return false, c.unexpected(resp)
	}
}

// SignIn exchanges credentials for a token and stores it in the session
// carried by ctx. The session gets a new id first.
func (c *Client) SignIn(ctx context.Context, userName, password string) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}

	var token string
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"userName": userName, "password": password}).
		SetResult(&token).
		Post(apiPrefix + "Authentication")
	if err != nil {
		return fmt.Errorf("sign in: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusBadRequest:
		return apperr.ErrUnauthorized
	default:
		return c.unexpected(resp)
	}

	if err := c.sessions.Renew(ctx, s); err != nil {
		return err
	}
	s.Token = token
	s.UserName = userName
	return c.sessions.Commit(ctx, s)
}

// SignOut drops the token and persists the cleared session before returning.
func (c *Client) SignOut(ctx context.Context) error {
	s, err := session.FromContext(ctx)
	if err != nil {
		return err
	}
	s.Clear()
	if err := c.sessions.Commit(ctx, s); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}
