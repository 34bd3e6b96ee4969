package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultGoogleBaseURL = "https://oauth2.googleapis.com"

var (
	ErrGoogleTokenInvalid  = errors.New("invalid google id token")
	ErrGoogleAudience      = errors.New("google token audience mismatch")
	ErrGoogleCodeExchange  = errors.New("google authorization code exchange failed")
	ErrGoogleEmailMissing  = errors.New("google account did not provide an email")
	ErrGoogleTokenExpired  = errors.New("google id token expired")
	ErrGoogleNotConfigured = errors.New("google oauth client not configured")
)

// GoogleIdentity is the subset of Google's tokeninfo payload the service
// consumes.
type GoogleIdentity struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	Audience   string `json:"aud"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Expiry     string `json:"exp"`
}

// GoogleConfig configures the verifier. BaseURL and HTTPClient exist so tests
// can point at a local server.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	BaseURL      string
	HTTPClient   *http.Client
	Timeout      time.Duration
}

// GoogleVerifier validates Google ID tokens and exchanges authorization
// codes, via Google's tokeninfo and token endpoints.
type GoogleVerifier struct {
	clientID     string
	clientSecret string
	redirectURI  string
	baseURL      string
	client       *http.Client
}

func NewGoogleVerifier(cfg GoogleConfig) *GoogleVerifier {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoogleVerifier{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		client:       client,
	}
}

// VerifyIDToken checks the ID token against Google's tokeninfo endpoint and
// returns the verified identity. The token must be issued for our client id
// and must not be expired.
func (g *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	if g.clientID == "" {
		return nil, ErrGoogleNotConfigured
	}

	endpoint := g.baseURL + "/tokeninfo?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGoogleTokenInvalid
	}

	var identity GoogleIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if identity.Audience != g.clientID {
		return nil, ErrGoogleAudience
	}
	if exp, err := strconv.ParseInt(identity.Expiry, 10, 64); err == nil && time.Now().Unix() >= exp {
		return nil, ErrGoogleTokenExpired
	}
	if identity.Email == "" {
		return nil, ErrGoogleEmailMissing
	}

	return &identity, nil
}

// ExchangeCode trades an authorization code for tokens at Google's token
// endpoint and verifies the returned ID token through the same path as
// VerifyIDToken.
func (g *GoogleVerifier) ExchangeCode(ctx context.Context, code string) (*GoogleIdentity, error) {
	if g.clientID == "" || g.clientSecret == "" {
		return nil, ErrGoogleNotConfigured
	}

	form := url.Values{
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
		"redirect_uri":  {g.redirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrGoogleCodeExchange
	}

	var tokens struct {
		AccessToken string `json:"access_token"`
		IDToken     string `json:"id_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokens.IDToken == "" {
		return nil, ErrGoogleCodeExchange
	}

	return g.VerifyIDToken(ctx, tokens.IDToken)
}
