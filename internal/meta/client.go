package meta

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/leshachaplin/capi-forwarder/internal/domain"
)

const (
	defaultBaseURL    = "https://graph.facebook.com"
	defaultAPIVersion = "v19.0"
	redacted          = "[REDACTED]"
)

type Config struct {
	BaseURL    string        `env:"GRAPH_API_URL" envDefault:"https://graph.facebook.com"`
	APIVersion string        `env:"GRAPH_API_VERSION" envDefault:"v19.0"`
	Timeout    time.Duration `env:"GRAPH_API_TIMEOUT" envDefault:"0s"`
}

// Client posts events to the Graph API. It makes exactly one attempt per call
// and hands back non-2xx answers like any other response.
type Client struct {
	http       *retryablehttp.Client
	baseURL    string
	apiVersion string
	logger     zerolog.Logger
}

func New(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = defaultAPIVersion
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		logger:     logger,
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 0
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.HTTPClient.Timeout = cfg.Timeout
	// the default logger prints request URLs, which carry the access token
	httpClient.Logger = nil
	httpClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
		c.logger.Debug().Str("method", req.Method).Int("attempt", attempt).Msg("sending events")
	}
	httpClient.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		c.logger.Debug().Int("status", resp.StatusCode).Msg("graph api responded")
	}
	c.http = httpClient

	return c
}

func (c *Client) SendEvents(
	ctx context.Context,
	pixelID, accessToken string,
	payload domain.ConversionPayload,
) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.eventsURL(pixelID, accessToken), body)
	if err != nil {
		return nil, errors.Wrap(redactError(err, pixelID, accessToken), "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(redactError(err, pixelID, accessToken), "post events")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(redactError(err, pixelID, accessToken), "read response")
	}

	if !json.Valid(data) {
		return nil, errors.Errorf("decode response: status %d: body is not json", resp.StatusCode)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Warn().Int("status", resp.StatusCode).Msg("graph api rejected events")
	}

	return json.RawMessage(data), nil
}

func (c *Client) eventsPath(pixelID string) string {
	return "/" + c.apiVersion + "/" + url.PathEscape(pixelID) + "/events"
}

func (c *Client) eventsURL(pixelID, accessToken string) string {
	q := url.Values{}
	q.Set("access_token", accessToken)
	return c.baseURL + c.eventsPath(pixelID) + "?" + q.Encode()
}

// redactError drops the request URL from transport errors and masks any other
// echo of the pixel id or the token.
func redactError(err error, secrets ...string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret != "" {
			msg = strings.ReplaceAll(msg, secret, redacted)
		}
	}
	if msg != err.Error() {
		return errors.New(msg)
	}
	return err
}
