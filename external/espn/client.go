package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/logging"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/platform/resilience"
	"github.com/Checo3x/Washington-Commanders-Hub/internal/usecase"
)

const (
	defaultBaseURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl"

	scheduleQuery  = "seasontype=2&groups=all&limit=1000"
	standingsQuery = "groups=all&limit=1000"
)

var apiKeyParamRegex = regexp.MustCompile(`api_key=[^&\s"']+`)
var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the ESPN site API and hands back raw JSON documents. The
// payloads keep their upstream shape: validation and normalization happen in
// the usecase layer, never here.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchScoreboard returns the raw regular-season scoreboard document.
func (c *Client) FetchScoreboard(ctx context.Context) ([]byte, error) {
	raw, err := c.doJSON(ctx, "/scoreboard", scheduleQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}
	return raw, nil
}

// FetchStandings returns the raw league standings document.
func (c *Client) FetchStandings(ctx context.Context) ([]byte, error) {
	raw, err := c.doJSON(ctx, "/standings", standingsQuery)
	if err != nil {
		return nil, fmt.Errorf("fetch standings: %w", err)
	}
	return raw, nil
}

func (c *Client) doJSON(ctx context.Context, path, rawQuery string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: ESPN api key is not set", usecase.ErrConfiguration)
	}
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: sport data provider is temporarily unavailable", usecase.ErrNetwork)
		}
	}

	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: parse query %q", usecase.ErrConfiguration, rawQuery)
	}
	values.Set("api_key", c.apiKey)

	fullURL := c.baseURL + path + "?" + values.Encode()

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil {
				if crerr.Is(reqErr, errESPNTransient) {
					c.breaker.RecordFailure()
				} else {
					c.breaker.RecordSuccess()
				}
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, classifyRequestError(err)
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected response payload type %T", usecase.ErrProcessing, out)
	}

	if !sonic.Valid(raw) {
		return nil, fmt.Errorf("%w: upstream body is not valid JSON", usecase.ErrFormat)
	}

	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errESPNTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, &usecase.StatusError{Code: resp.StatusCode}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "espn request failed", "url", redactAPIURL(fullURL), "error", lastErr)
	return nil, lastErr
}

// classifyRequestError folds transport-level failures into the network class
// while leaving already-classified errors untouched.
func classifyRequestError(err error) error {
	if err == nil {
		return nil
	}

	var statusErr *usecase.StatusError
	if crerr.As(err, &statusErr) {
		return err
	}
	if crerr.Is(err, usecase.ErrConfiguration) || crerr.Is(err, usecase.ErrFormat) || crerr.Is(err, usecase.ErrNetwork) {
		return err
	}
	if err == context.Canceled || err == context.DeadlineExceeded {
		return err
	}
	if crerr.Is(err, errESPNTransient) {
		return fmt.Errorf("%w: %s", usecase.ErrNetwork, err.Error())
	}
	return fmt.Errorf("%w: %s", usecase.ErrNetwork, err.Error())
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooEarly, http.StatusTooManyRequests:
		return true
	}
	return code >= 500
}

func sanitizeSensitiveText(value, apiKey string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if apiKey != "" {
		value = strings.ReplaceAll(value, apiKey, "REDACTED")
	}
	value = apiKeyParamRegex.ReplaceAllString(value, "api_key=REDACTED")
	return value
}

func redactAPIURL(fullURL string) string {
	return apiKeyParamRegex.ReplaceAllString(fullURL, "api_key=REDACTED")
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
