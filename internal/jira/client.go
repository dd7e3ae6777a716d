package jira

import (
	"context"
	"net/http"
	"time"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

const (
	defaultPageSize = 100
	defaultRate     = 5
)

// Client talks to the Jira REST API on behalf of one account.
type Client struct {
	api      *gojira.Client
	pageSize int
}

type options struct {
	pageSize  int
	limit     rate.Limit
	burst     int
	transport http.RoundTripper
}

type Option func(*options)

// WithPageSize sets how many issues are requested per search page.
func WithPageSize(n int) Option {
	return func(o *options) {
		o.pageSize = n
	}
}

// WithRateLimit caps outbound requests per second.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.limit = limit
		o.burst = burst
	}
}

// WithTransport replaces the underlying HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.transport = rt
	}
}

func NewClient(baseURL, email, apiToken string, opts ...Option) (*Client, error) {
	o := options{
		pageSize:  defaultPageSize,
		limit:     defaultRate,
		burst:     defaultRate,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(&o)
	}

	auth := gojira.BasicAuthTransport{
		Username: email,
		Password: apiToken,
		Transport: &limitedTransport{
			limiter: rate.NewLimiter(o.limit, o.burst),
			base:    o.transport,
		},
	}
	httpClient := auth.Client()
	httpClient.Timeout = 30 * time.Second

	api, err := gojira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create jira client", goerr.V("url", baseURL))
	}

	return &Client{
		api:      api,
		pageSize: o.pageSize,
	}, nil
}

// SearchIssues runs jql and returns every matching issue, following pages
// until the result set is exhausted.
func (c *Client) SearchIssues(ctx context.Context, jql string, fields []string) ([]gojira.Issue, error) {
	ctxlog.From(ctx).Debug("searching jira", "jql", jql, "fields", fields)

	opts := &gojira.SearchOptions{
		MaxResults: c.pageSize,
		Fields:     fields,
	}

	var issues []gojira.Issue
	err := c.api.Issue.SearchPagesWithContext(ctx, jql, opts, func(issue gojira.Issue) error {
		issues = append(issues, issue)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "jira search failed", goerr.V("jql", jql))
	}

	return issues, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if _, _, err := c.api.User.GetSelfWithContext(ctx); err != nil {
		return goerr.Wrap(err, "jira health check failed")
	}
	return nil
}

type limitedTransport struct {
	limiter *rate.Limiter
	base    http.RoundTripper
}

func (t *limitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
