package firebase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
)

// AuthClient wraps the Firebase Admin SDK auth client plus the REST
// identitytoolkit endpoints that the Admin SDK has no equivalent for
// (email/password sign-in).
type AuthClient struct {
	client *auth.Client
	apiKey string
	httpc  *http.Client
}

func NewAuthClient(client *auth.Client, apiKey string) *AuthClient {
	return &AuthClient{
		client: client,
		apiKey: apiKey,
		httpc:  &http.Client{Timeout: 20 * time.Second},
	}
}

func (f *AuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := f.client.CreateUser(ctx, params)
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

func (f *AuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// IsEmailVerified reports the provider-side email verification flag.
// Verification is advisory only; it never blocks login.
func (f *AuthClient) IsEmailVerified(ctx context.Context, uid string) (bool, error) {
	user, err := f.client.GetUser(ctx, uid)
	if err != nil {
		return false, err
	}
	return user.EmailVerified, nil
}

// RevokeTokens invalidates every refresh token for the account. Used to
// force unverified accounts back out after a successful credential check.
func (f *AuthClient) RevokeTokens(ctx context.Context, uid string) error {
	return f.client.RevokeRefreshTokens(ctx, uid)
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
}

// SignInWithEmailPassword exchanges credentials for an ID token through
// the identitytoolkit REST API.
func (f *AuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.apiKey == "" {
		return "", fmt.Errorf("firebase api key is not configured")
	}

	url := fmt.Sprintf("https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword?key=%s", f.apiKey)

	body, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return "", err
	}

	resp, err := f.httpc.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sign-in failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	var result signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	return result.IDToken, nil
}
