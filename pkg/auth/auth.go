// Package auth is the client for the Covered identity provider. It covers the
// three sign-in paths the app offers: Google (device flow), email/password
// (with optional TOTP second factor) and account creation. Session state is
// a pair of tokens; profile data travels inside the ID token's claims.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/covered-news/covered/internal/utils"
	"github.com/covered-news/covered/pkg/whttp"
)

const requestTimeout = 30 * time.Second

// User is the provider's view of a signed-in account.
type User struct {
	ID           string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	PhotoURL     string `json:"photoUrl"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

// DeviceLogin is a pending Google sign-in started on this device.
type DeviceLogin struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURL string `json:"verification_url"`
	IntervalSec     int    `json:"interval"`
}

type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    whttp.NewClient(requestTimeout),
	}
}

// SignInWithPassword authenticates an existing account. totpCode may be empty
// when the account has no second factor enrolled.
func (c *Client) SignInWithPassword(ctx context.Context, email, password, totpCode string) (*User, error) {
	payload := map[string]string{"email": email, "password": password}
	if totpCode != "" {
		payload["totpCode"] = totpCode
	}
	return c.postForUser(ctx, "/v1/accounts:signInWithPassword", payload)
}

// SignUp creates a new email/password account. The display name defaults to
// the local part of the email address.
func (c *Client) SignUp(ctx context.Context, email, password string) (*User, error) {
	user, err := c.postForUser(ctx, "/v1/accounts:signUp", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	if user.DisplayName == "" {
		user.DisplayName = strings.SplitN(email, "@", 2)[0]
	}
	return user, nil
}

// StartDeviceLogin begins the Google sign-in flow: the user opens the
// verification URL in a browser and enters the user code there.
func (c *Client) StartDeviceLogin(ctx context.Context) (*DeviceLogin, error) {
	res, err := c.post(ctx, "/v1/auth/device", nil)
	if err != nil {
		return nil, err
	}

	var dl DeviceLogin
	if err := json.Unmarshal(res, &dl); err != nil {
		return nil, fmt.Errorf("could not decode device login response: %w", err)
	}
	if dl.IntervalSec <= 0 {
		dl.IntervalSec = 5
	}
	return &dl, nil
}

// PollDeviceLogin blocks until the pending device login is authorized, the
// provider rejects it, or ctx is cancelled.
func (c *Client) PollDeviceLogin(ctx context.Context, dl *DeviceLogin) (*User, error) {
	interval := time.Duration(dl.IntervalSec) * time.Second
	for {
		user, err := c.postForUser(ctx, "/v1/auth/device/poll", map[string]string{
			"device_code": dl.DeviceCode,
		})
		if err == nil {
			return user, nil
		}

		var provErr *ProviderError
		if !asProviderError(err, &provErr) || provErr.Code != "AUTHORIZATION_PENDING" {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// SignOut revokes the refresh token, ending the provider session.
func (c *Client) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	_, err := c.post(ctx, "/v1/accounts:signOut", map[string]string{
		"refreshToken": refreshToken,
	})
	return err
}

func (c *Client) postForUser(ctx context.Context, path string, payload map[string]string) (*User, error) {
	res, err := c.post(ctx, path, payload)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(res, &user); err != nil {
		return nil, fmt.Errorf("could not decode provider response: %w", err)
	}
	fillFromClaims(&user)
	return &user, nil
}

func (c *Client) post(ctx context.Context, path string, payload map[string]string) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	url := c.baseURL + path
	utils.Log.Debug("POST ", url)

	res, err := whttp.Send(ctx, &whttp.Request{Method: "POST", URL: url, Body: body}, c.http)
	if err != nil {
		return nil, &ProviderError{Code: "NETWORK_ERROR", Raw: err.Error()}
	}
	if res.StatusCode >= 300 {
		return nil, providerErrorFromBody(res.Body)
	}
	return res.Body, nil
}

// fillFromClaims overlays profile fields from the ID token's claims. The token
// is not verified here; signature checks are the provider's job and the claims
// only feed the drawer header.
func fillFromClaims(user *User) {
	if user.IDToken == "" {
		return
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(user.IDToken, claims); err != nil {
		utils.Log.Debug("unparseable ID token: ", err)
		return
	}

	if name, ok := claims["name"].(string); ok && name != "" {
		user.DisplayName = name
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		user.Email = email
	}
	if pic, ok := claims["picture"].(string); ok && pic != "" {
		user.PhotoURL = pic
	}
	if sub, ok := claims["sub"].(string); ok && user.ID == "" {
		user.ID = sub
	}
}

func providerErrorFromBody(body []byte) error {
	code := gjson.GetBytes(body, "error.message").String()
	if code == "" {
		code = gjson.GetBytes(body, "error").String()
	}
	return &ProviderError{Code: code, Raw: string(body)}
}
