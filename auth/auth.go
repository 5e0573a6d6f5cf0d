// Package auth handles client-credentials authentication against the
// predictor service. Tokens are cached and transparently renewed when
// they expire.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred holds an OAuth2 client-credentials flow and the last token
// it obtained. Not safe for concurrent use.
type ClientCred struct {
	conf  clientcredentials.Config
	token *oauth2.Token
}

func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// Token returns a valid access token, requesting a new one when the
// cached token is missing or expired.
func (c *ClientCred) Token() (string, error) {
	if err := c.ensure(); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader attaches a bearer token to the request, renewing the
// cached token first if needed.
func (c *ClientCred) SetAuthHeader(r *http.Request) error {
	if err := c.ensure(); err != nil {
		return err
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *ClientCred) ensure() error {
	if c.token != nil && c.token.Valid() {
		return nil
	}
	tok, err := c.conf.Token(context.Background())
	if err != nil {
		return fmt.Errorf("fetch token: %w", err)
	}
	c.token = tok
	return nil
}
