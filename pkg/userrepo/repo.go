// Package userrepo is a read-only client for a remote user directory.
package userrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/userdir/internal/domain"
	"github.com/samvad-hq/userdir/pkg/httpclient"
)

// DefaultBaseURL is the public directory used by Default.
const DefaultBaseURL = "https://jsonplaceholder.typicode.com"

// Repo fetches users from a directory rooted at a fixed base URL. Its
// configuration is set once in New; a Repo is safe for concurrent use.
type Repo struct {
	baseURL string
	client  httpclient.Client
	log     Logger
}

type options struct {
	client  httpclient.Client
	timeout time.Duration
	log     Logger
}

// Option customises a Repo at construction.
type Option func(*options)

// WithHTTPClient replaces the freshly created transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithTimeout sets the per-request timeout of the freshly created transport.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(log Logger) Option {
	return func(o *options) { o.log = log }
}

// New builds a Repo targeting baseURL with its own transport.
func New(baseURL string, opts ...Option) *Repo {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil {
		o.client = httpclient.NewRestyClient(o.timeout)
	}
	return &Repo{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  o.client,
		log:     ensureLogger(o.log),
	}
}

// Default is New(DefaultBaseURL, opts...).
func Default(opts ...Option) *Repo {
	return New(DefaultBaseURL, opts...)
}

// BaseURL returns the origin prefix of every request.
func (r *Repo) BaseURL() string { return r.baseURL }

// GetUser fetches GET {base}/users/{id}.
func (r *Repo) GetUser(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}

	var user domain.User
	if err := r.getJSON(ctx, "/users/"+url.PathEscape(id), &user); err != nil {
		return domain.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return user, nil
}

// GetUsers fetches GET {base}/users, preserving server order.
func (r *Repo) GetUsers(ctx context.Context) (domain.UserList, error) {
	var users domain.UserList
	if err := r.getJSON(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (r *Repo) getJSON(ctx context.Context, path string, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	target := r.baseURL + path
	start := time.Now()

	resp, err := r.client.Get(ctx, target)
	if err != nil {
		r.log.ErrorObj("user directory request failed", "request_error", map[string]any{
			"url":   target,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: GET %s: %w", ErrTransport, target, err)
	}

	body := resp.Body()
	r.log.DebugObj("user directory response", "response_meta", map[string]any{
		"url":        target,
		"status":     resp.StatusCode(),
		"bytes":      len(body),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &StatusError{StatusCode: code, Body: responseSnippet(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
