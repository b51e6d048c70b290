package instagram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"igcollector/pkg/errors"
	"igcollector/pkg/logger"
	"igcollector/pkg/ratelimit"
)

// Client fetches public profile metadata from Instagram without
// authentication. A single fetch attempt either returns metadata or fails
// with a typed error; all retry policy lives with the caller.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	limiter    ratelimit.Limiter
	logger     logger.Logger
}

// NewClient creates an Instagram client with the given request timeout.
func NewClient(timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		headers: map[string]string{
			"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36",
			"Accept":          "*/*",
			"Accept-Language": "en-US,en;q=0.9",
			"X-IG-App-ID":     AppID,
		},
		baseURL: BaseURL,
		limiter: ratelimit.Unlimited{},
		logger:  log,
	}
}

// SetHeader sets a custom request header.
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetLimiter installs a rate limiter applied before every upstream request.
func (c *Client) SetLimiter(l ratelimit.Limiter) {
	if l != nil {
		c.limiter = l
	}
}

// FetchUserProfile fetches the public metadata of one profile.
func (c *Client) FetchUserProfile(ctx context.Context, username string) (*Profile, error) {
	url := ProfileURL(username)

	c.logger.DebugWithFields("fetching user profile", map[string]interface{}{
		"username": username,
		"url":      url,
	})

	var response webProfileResponse
	if err := c.getJSON(ctx, url, &response); err != nil {
		c.logger.WarnWithFields("profile fetch failed", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return nil, err
	}

	if response.RequiresToLogin {
		return nil, errors.New(errors.ErrorTypeAuthWall, http.StatusUnauthorized,
			"instagram requires login to view %q", username)
	}
	if response.Data.User.Username == "" {
		// The endpoint reports missing profiles as 200 with an empty user.
		return nil, errors.New(errors.ErrorTypeNotFound, http.StatusNotFound,
			"profile %q not found", username)
	}

	u := response.Data.User
	return &Profile{
		Username:    u.Username,
		FullName:    u.FullName,
		Biography:   u.Biography,
		ExternalURL: u.ExternalURL,
		IsPrivate:   u.IsPrivate,
	}, nil
}

// getJSON performs a GET request and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	c.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.New(errors.ErrorTypeUnknown, 0, "failed to create request: %v", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.New(errors.ErrorTypeNetwork, 0, "network error: %v", err)
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("request completed", map[string]interface{}{
		"url":      url,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if err := c.checkResponseStatus(resp); err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(errors.ErrorTypeNetwork, resp.StatusCode,
			"failed to read response body: %v", err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		preview := string(body)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		c.logger.WarnWithFields("failed to parse response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"body_preview": preview,
		})
		return errors.New(errors.ErrorTypeParsing, resp.StatusCode,
			"failed to parse JSON: %v", err)
	}
	return nil
}

func (c *Client) checkResponseStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return errors.New(errors.ErrorTypeAuthWall, resp.StatusCode, "access denied")
	case http.StatusNotFound:
		return errors.New(errors.ErrorTypeNotFound, resp.StatusCode, "resource not found")
	case http.StatusTooManyRequests:
		return errors.New(errors.ErrorTypeRateLimit, resp.StatusCode, "rate limit exceeded")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errors.New(errors.ErrorTypeServerError, resp.StatusCode, "server error")
	default:
		if resp.StatusCode >= 400 {
			return errors.New(errors.ErrorTypeUnknown, resp.StatusCode,
				"unexpected status code: %d", resp.StatusCode)
		}
		return nil
	}
}
