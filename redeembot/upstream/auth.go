package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var (
	ErrEmptyAccountID       = errors.New("account id is empty")
	ErrMissingAuthorization = errors.New("authorization header missing from login response")
)

// Credential is a bearer token for exactly one subsequent store call.
type Credential struct {
	AccountID string
	Token     string
	IssuedAt  time.Time
}

// AuthError reports a failed login for one account.
type AuthError struct {
	AccountID string
	Err       error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("login failed for %s: %v", e.AccountID, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

type loginRequest struct {
	SiteID   int    `json:"site_id"`
	PlayerID string `json:"player_id"`
	ServerID string `json:"server_id"`
	Device   string `json:"device"`
}

// Authenticator performs the player login exchange.
type Authenticator struct {
	client *Client
	now    func() time.Time
}

func NewAuthenticator(client *Client) *Authenticator {
	return &Authenticator{client: client, now: time.Now}
}

// Authenticate logs accountID in. Any failure, including a 2xx response
// without an Authorization header, is returned as *AuthError.
func (a *Authenticator) Authenticate(ctx context.Context, accountID string) (Credential, error) {
	if accountID == "" {
		return Credential{}, &AuthError{AccountID: accountID, Err: ErrEmptyAccountID}
	}

	resp, err := a.client.post(ctx, a.client.cfg.LoginPath, loginRequest{
		SiteID:   a.client.cfg.SiteID,
		PlayerID: accountID,
		ServerID: "",
		Device:   "pc",
	}, "")
	if err != nil {
		return Credential{}, &AuthError{AccountID: accountID, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	token := resp.Header.Get("Authorization")
	if token == "" {
		return Credential{}, &AuthError{AccountID: accountID, Err: ErrMissingAuthorization}
	}

	return Credential{AccountID: accountID, Token: token, IssuedAt: a.now()}, nil
}
