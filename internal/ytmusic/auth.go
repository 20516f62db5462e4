package ytmusic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
)

const (
	googleTokenURL      = "https://oauth2.googleapis.com/token"
	googleDeviceCodeURL = "https://oauth2.googleapis.com/device/code"
)

// Scopes requested for YouTube Music access.
var Scopes = []string{"https://www.googleapis.com/auth/youtube"}

var (
	ErrNoToken          = errors.New("credentials contain neither access_token nor refresh_token")
	ErrMissingOAuthApp  = errors.New("oauth client_id and client_secret are required")
	ErrDeviceLoginAbort = errors.New("device login aborted")
)

// Token is the on-disk OAuth credential format shared with ytmusicapi.
//
// ExpiresAt is a unix timestamp in seconds.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	ClientID     string `json:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty"`
}

// ParseToken decodes credentials JSON and checks that it carries a usable token.
func ParseToken(data []byte) (*Token, error) {
	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if t.AccessToken == "" && t.RefreshToken == "" {
		return nil, ErrNoToken
	}
	return &t, nil
}

// LoadToken reads and parses a credentials file.
func LoadToken(path string) (*Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return ParseToken(data)
}

// OAuth2 converts t into an [oauth2.Token].
func (t *Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    t.TokenType,
	}
	if t.ExpiresAt > 0 {
		tok.Expiry = time.Unix(t.ExpiresAt, 0)
	} else if t.AccessToken == "" {
		// forces an immediate refresh
		tok.Expiry = time.Unix(1, 0)
	}
	return tok
}

// TokenFromOAuth2 converts tok into the on-disk format.
func TokenFromOAuth2(tok *oauth2.Token) *Token {
	t := &Token{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		t.Scope = scope
	}
	if !tok.Expiry.IsZero() {
		t.ExpiresAt = tok.Expiry.Unix()
		t.ExpiresIn = int64(time.Until(tok.Expiry).Seconds())
	}
	return t
}

// Save writes t to path with owner-only permissions.
func (t *Token) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}

// OAuthConfig returns the Google OAuth configuration for a YouTube Music OAuth client.
//
// The client must be of type "TVs and Limited Input devices" for [DeviceLogin] to work.
func OAuthConfig(clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			TokenURL:      googleTokenURL,
			DeviceAuthURL: googleDeviceCodeURL,
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// DeviceLogin runs the OAuth 2.0 device authorization flow.
//
// prompt receives the user code and verification URL and must return quickly; a non-nil error
// aborts the flow. The returned token records the client ID and secret so it can be refreshed later.
func DeviceLogin(ctx context.Context, config *oauth2.Config, prompt func(*oauth2.DeviceAuthResponse) error) (*Token, error) {
	if config.ClientID == "" || config.ClientSecret == "" {
		return nil, ErrMissingOAuthApp
	}

	auth, err := config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to request device code: %w", err)
	}

	if err := prompt(auth); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceLoginAbort, err)
	}

	tok, err := config.DeviceAccessToken(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain device token: %w", err)
	}

	t := TokenFromOAuth2(tok)
	t.ClientID = config.ClientID
	t.ClientSecret = config.ClientSecret
	return t, nil
}
