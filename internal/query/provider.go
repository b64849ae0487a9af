package query

import "context"

type contextKey struct{}

// WithClient returns a copy of ctx carrying c
func WithClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the client attached by WithClient, or nil
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(contextKey{}).(*Client)
	return c
}

// PageConfig is the client configuration serialised into every page
type PageConfig struct {
	BaseURL              string `json:"baseURL"`
	Retry                int    `json:"retry"`
	RefetchOnWindowFocus bool   `json:"refetchOnWindowFocus"`
	StaleTimeMs          int64  `json:"staleTime"`
}

// PageConfig describes c for the page
func (c *Client) PageConfig() PageConfig {
	return PageConfig{
		BaseURL:              c.opts.BaseURL,
		Retry:                c.opts.Retry,
		RefetchOnWindowFocus: c.opts.RefetchOnWindowFocus,
		StaleTimeMs:          c.opts.StaleTime.Milliseconds(),
	}
}

