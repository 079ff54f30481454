package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type Client struct {
	url  string
	http HTTPClient
}

func NewClient(url string, httpClient HTTPClient) *Client {
	return &Client{
		url:  url,
		http: httpClient,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	return req, nil
}

type purchaseReq struct {
	Name          string  `json:"name,omitempty"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Value         float64 `json:"value,omitempty"`
	EventID       string  `json:"event_id,omitempty"`
	TestEventCode string  `json:"test_event_code,omitempty"`
}

type purchaseResp struct {
	Sent bool            `json:"sent"`
	Meta json.RawMessage `json:"meta"`
}

type response struct {
	status  int
	body    []byte
	headers http.Header
}

func (c *Client) do(req *http.Request) (*response, error) {
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response: %w", err)
	}
	return &response{status: res.StatusCode, body: body, headers: res.Header}, nil
}

func (c *Client) SendPurchase(ctx context.Context, params purchaseReq, headers map[string]string) (*response, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/capi-purchase", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}

func (c *Client) Preflight(ctx context.Context) (*response, error) {
	req, err := c.newRequest(ctx, http.MethodOptions, "/capi-purchase", nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	return c.do(req)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
