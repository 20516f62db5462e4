package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL    = "https://music.youtube.com/youtubei/v1/"
	musicOrigin       = "https://music.youtube.com"
	clientName        = "WEB_REMIX"
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	defaultLanguage   = "en"
	defaultRPS        = 5
	defaultTimeout    = 30 * time.Second
	maxErrorBodyBytes = 64 << 10
)

// Options configures a [Client]. Zero values select defaults.
type Options struct {
	BaseURL           string
	TokenURL          string
	HTTPClient        *http.Client // base transport; its Transport is wrapped with OAuth
	ClientID          string       // overrides client_id from the credentials file
	ClientSecret      string
	Timeout           time.Duration
	RequestsPerSecond float64
	Language          string
	Now               func() time.Time
}

// Client performs authenticated InnerTube requests.
type Client struct {
	baseURL    string
	authFile   string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
	now        func() time.Time
}

// NewClient creates a [Client] authenticated with the credentials file at authFile.
//
// The file is read once; construction performs no network I/O.
func NewClient(authFile string, opts Options) (*Client, error) {
	token, err := LoadToken(authFile)
	if err != nil {
		return nil, err
	}
	return newClient(authFile, token, opts), nil
}

func newClient(authFile string, token *Token, opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if !strings.HasSuffix(opts.BaseURL, "/") {
		opts.BaseURL += "/"
	}
	if opts.Language == "" {
		opts.Language = defaultLanguage
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRPS
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	base := http.DefaultClient
	if opts.HTTPClient != nil {
		base = opts.HTTPClient
	}

	return &Client{
		baseURL:  opts.BaseURL,
		authFile: authFile,
		language: opts.Language,
		httpClient: &http.Client{
			Transport: &oauth2.Transport{Source: tokenSource(token, opts, base), Base: base.Transport},
			Timeout:   opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		now:     opts.Now,
	}
}

// tokenSource refreshes through Google when an OAuth client is known, and serves the stored token otherwise.
func tokenSource(token *Token, opts Options, base *http.Client) oauth2.TokenSource {
	clientID, clientSecret := token.ClientID, token.ClientSecret
	if opts.ClientID != "" {
		clientID, clientSecret = opts.ClientID, opts.ClientSecret
	}

	if clientID == "" || token.RefreshToken == "" {
		return oauth2.StaticTokenSource(token.OAuth2())
	}

	config := OAuthConfig(clientID, clientSecret)
	if opts.TokenURL != "" {
		config.Endpoint.TokenURL = opts.TokenURL
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return config.TokenSource(ctx, token.OAuth2())
}

// AuthFile returns the credentials file the client was built from.
func (c *Client) AuthFile() string {
	return c.authFile
}

// clientVersion follows the WEB_REMIX "1.YYYYMMDD.01.00" scheme.
func (c *Client) clientVersion() string {
	return "1." + c.now().UTC().Format("20060102") + ".01.00"
}

func (c *Client) requestContext() map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":    clientName,
			"clientVersion": c.clientVersion(),
			"hl":            c.language,
		},
		"user": map[string]any{},
	}
}

// post sends an InnerTube request for endpoint with body merged into the client context and decodes the response into result.
func (c *Client) post(ctx context.Context, endpoint string, body map[string]any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	payload := map[string]any{"context": c.requestContext()}
	for k, v := range body {
		payload[k] = v
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := c.baseURL + endpoint + "?alt=json&prettyPrint=false"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Origin", musicOrigin)
	req.Header.Set("X-Origin", musicOrigin)
	req.Header.Set("X-Goog-AuthUser", "0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	var errResp struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		apiErr.Message = errResp.Error.Message
		apiErr.Status = errResp.Error.Status
	}
	return apiErr
}
