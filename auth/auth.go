// Package auth obtains OAuth2 tokens with the client-credentials flow for
// metrics exporters sitting behind an authenticating proxy.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type ClientCred struct {
	conf  clientcredentials.Config
	token *oauth2.Token
}

func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// GetToken returns the cached access token, fetching a new one when it is
// missing or expired.
func (c *ClientCred) GetToken(ctx context.Context) (string, error) {
	if c.token == nil || !c.token.Valid() {
		tok, err := c.conf.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get token: %w", err)
		}
		c.token = tok
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader adds a bearer token to r.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	if _, err := c.GetToken(r.Context()); err != nil {
		return err
	}
	c.token.SetAuthHeader(r)
	return nil
}

// HTTPClient returns a client that attaches and refreshes tokens on every
// request. ctx bounds token requests, not the returned client.
func (c *ClientCred) HTTPClient(ctx context.Context) *http.Client {
	return c.conf.Client(ctx)
}
