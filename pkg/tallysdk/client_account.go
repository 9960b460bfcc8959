package tallysdk

import (
	"context"
	"net/http"
)

// Signup registers a new account.
func (c *SDKClient) Signup(ctx context.Context, username, password string) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/signup", CredentialsRequest{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a one hour access token.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/login", CredentialsRequest{
		Username: username,
		Password: password,
	}, "")
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginSession logs in and wraps the token in a Session for username.
func (c *SDKClient) LoginSession(ctx context.Context, username, password string) (*Session, error) {
	out, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(username, out.Token), nil
}
