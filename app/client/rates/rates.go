package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"asistente/app/config"

	"github.com/samber/do"
)

// ErrUnavailable marks a transport failure: the rate service could not be
// reached at all, as opposed to replying with something unusable.
var ErrUnavailable = errors.New("rate service unavailable")

type convertResponse struct {
	Result *float64 `json:"result"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewClientWithBaseURL(cfg.Rates.BaseURL), nil
}

func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Convert returns the amount converted between two ISO currency codes.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))

	requestURL := fmt.Sprintf("%s/convert?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var body convertResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}

	if body.Result == nil {
		return 0, fmt.Errorf("response has no result field")
	}

	return *body.Result, nil
}
