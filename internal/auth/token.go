// Package auth provides the bearer-credential sources consumed by the drive
// client. It answers exactly one question per call: "give me a valid token,
// or tell me none exists" — the browser-side OAuth dance that originally
// produced these credentials is outside this repo.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/psorokin/tripfolio/backend/internal/domain"
)

// GoogleTokenURL is the token endpoint used to redeem refresh tokens.
const GoogleTokenURL = "https://oauth2.googleapis.com/token"

// StaticTokenSource returns one fixed access token on every call — the
// development path, fed from GOOGLE_ACCESS_TOKEN. An empty token signals
// unauthenticated rather than sending an empty Authorization header.
type StaticTokenSource string

// Token implements drive.TokenSource.
func (s StaticTokenSource) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", domain.ErrUnauthenticated
	}
	return string(s), nil
}

// OAuthTokenSource redeems a long-lived refresh token for short-lived access
// tokens against Google's token endpoint, caching the current one until it
// expires. This is the server-side equivalent of the session refresh flow the
// web client performs.
type OAuthTokenSource struct {
	source oauth2.TokenSource
}

// NewOAuthTokenSource builds an OAuthTokenSource from OAuth client
// credentials and a refresh token. tokenURL overrides the Google endpoint in
// tests; pass "" for the default.
func NewOAuthTokenSource(clientID, clientSecret, refreshToken, tokenURL string) *OAuthTokenSource {
	if refreshToken == "" {
		return &OAuthTokenSource{}
	}
	if tokenURL == "" {
		tokenURL = GoogleTokenURL
	}
	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	// oauth2.Config.TokenSource already wraps the refresh flow in a
	// reuse-until-expiry cache.
	return &OAuthTokenSource{
		source: cfg.TokenSource(context.Background(), &oauth2.Token{RefreshToken: refreshToken}),
	}
}

// Token implements drive.TokenSource. A missing refresh token is
// unauthenticated; a failed exchange is a provider-side failure.
func (s *OAuthTokenSource) Token(_ context.Context) (string, error) {
	if s.source == nil {
		return "", domain.ErrUnauthenticated
	}
	tok, err := s.source.Token()
	if err != nil {
		return "", fmt.Errorf("auth.OAuthTokenSource.Token: %w", err)
	}
	return tok.AccessToken, nil
}

// RequestTokenSource reads the bearer token the middleware extracted from the
// incoming request's Authorization header — the mode where the frontend
// forwards the user's own Google access token per request.
type RequestTokenSource struct{}

// Token implements drive.TokenSource.
func (RequestTokenSource) Token(ctx context.Context) (string, error) {
	tok, ok := TokenFromContext(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return tok, nil
}
