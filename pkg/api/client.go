package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"resty.dev/v3"
)

type Client interface {
	Header(name, value string) Client
	Query(query Parameter) Client
	GET(ctx context.Context) (*Response, error)
}

type Generator interface {
	New(path string, args ...any) Client
}

type defaultGenerator struct {
	client *resty.Client
}

// NewGenerator creates clients sharing one resty client rooted at baseURL.
func NewGenerator(baseURL string, timeout time.Duration, middlewares ...resty.ResponseMiddleware) *defaultGenerator {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	for _, m := range middlewares {
		client.AddResponseMiddleware(m)
	}

	return &defaultGenerator{client: client}
}

func (g *defaultGenerator) New(path string, args ...any) Client {
	return &defaultClient{
		client:  g.client,
		path:    fmt.Sprintf(path, args...),
		headers: make(map[string]string),
	}
}

func (g *defaultGenerator) Close() error {
	return g.client.Close()
}

type defaultClient struct {
	client  *resty.Client
	path    string
	headers map[string]string
	query   Parameter
}

func (c *defaultClient) Header(name, value string) Client {
	c.headers[name] = value
	return c
}

func (c *defaultClient) Query(query Parameter) Client {
	c.query = query
	return c
}

func (c *defaultClient) GET(ctx context.Context) (*Response, error) {
	req := c.client.R().WithContext(ctx).SetHeaders(c.headers)
	if c.query != nil {
		req.SetQueryParams(c.query)
	}

	result, err := req.Get(c.path)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Code:    result.StatusCode(),
		Header:  result.Header(),
		RawBody: result.Bytes(),
	}

	if len(response.RawBody) == 0 {
		response.Body = JSON{}
	} else if b, err := bytesToJSON(response.RawBody); err == nil {
		response.Body = b
	} else if b, err := bytesToArray(response.RawBody); err == nil {
		response.Body = b
	}

	return response, nil
}

type Response struct {
	Code    int
	Header  http.Header
	RawBody []byte

	// Body is either JSON or Array, or nil when the payload is neither.
	Body any
}

func (r *Response) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}

// Metric returns a response middleware observing the latency of every call.
func Metric(observe func(method, path string, code int, seconds float64)) resty.ResponseMiddleware {
	return func(_ *resty.Client, response *resty.Response) error {
		reqURL, err := url.Parse(response.Request.URL)
		if err != nil {
			return err
		}

		observe(response.Request.Method, reqURL.Path, response.StatusCode(), response.Duration().Seconds())
		return nil
	}
}
