package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mattmelloy/rotation-app/internal/logger"
)

const defaultTimeout = 15 * time.Second

// HTTPClient speaks the hosted store's REST surface: a token endpoint for
// auth and a single user_data table reached through the REST gateway.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client

	// accessToken authorizes table reads/writes for the signed-in user.
	accessToken string
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// UseSession installs the session whose access token authorizes row access.
func (c *HTTPClient) UseSession(s Session) {
	c.accessToken = s.AccessToken
}

func (c *HTTPClient) ClearSession() {
	c.accessToken = ""
}

// --- Auth ---

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.authRequest(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (Session, error) {
	return c.authRequest(ctx, "/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *HTTPClient) Refresh(ctx context.Context, session Session) (Session, error) {
	if session.RefreshToken == "" {
		return Session{}, ErrNoSession
	}
	return c.authRequest(ctx, "/auth/v1/token?grant_type=refresh_token", map[string]string{
		"refresh_token": session.RefreshToken,
	})
}

func (c *HTTPClient) authRequest(ctx context.Context, path string, body map[string]string) (Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Session{}, fmt.Errorf("failed to encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Session{}, fmt.Errorf("failed to build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Debug("auth rejected", "status", resp.StatusCode, "body", string(data))
		return Session{}, fmt.Errorf("%w: status %d", ErrAuthFailed, resp.StatusCode)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return Session{}, fmt.Errorf("failed to parse auth response: %w", err)
	}

	session := Session{
		UserID:       token.User.ID,
		Email:        token.User.Email,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if token.ExpiresIn > 0 {
		session.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}
	// Some responses omit the user object; the access token always carries
	// the identity claims.
	if session.UserID == "" {
		session.UserID, session.ExpiresAt = claimsFromToken(token.AccessToken)
	}
	if session.UserID == "" {
		return Session{}, fmt.Errorf("%w: response carried no user identity", ErrAuthFailed)
	}

	c.accessToken = session.AccessToken
	return session, nil
}

// claimsFromToken reads the subject and expiry from the access token. The
// token is decoded, not verified: the signing secret lives server-side and
// the server re-verifies every request.
func claimsFromToken(accessToken string) (string, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		logger.Warn("failed to decode access token", "error", err)
		return "", time.Time{}
	}

	sub, _ := claims.GetSubject()
	var expires time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expires = exp.Time
	}
	return sub, expires
}

// --- Records ---

func (c *HTTPClient) FetchSnapshot(ctx context.Context, userID string) (Snapshot, bool, error) {
	url := fmt.Sprintf("%s/rest/v1/user_data?user_id=eq.%s&select=meals,week_slots,shopping_list,updated_at", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to build fetch request: %w", err)
	}
	c.setRecordHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, false, fmt.Errorf("fetch failed: status %d", resp.StatusCode)
	}

	var rows []Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to parse fetch response: %w", err)
	}
	if len(rows) == 0 {
		// No row yet for this user. Normal for first sign-in.
		return Snapshot{}, false, nil
	}
	return rows[0], true, nil
}

func (c *HTTPClient) UpsertSnapshot(ctx context.Context, userID string, snap Snapshot) error {
	row := struct {
		UserID string `json:"user_id"`
		Snapshot
	}{UserID: userID, Snapshot: snap}
	row.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rest/v1/user_data", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build upsert request: %w", err)
	}
	c.setRecordHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "resolution=merge-duplicates,return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upsert failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Debug("upsert rejected", "status", resp.StatusCode, "body", string(data))
		return fmt.Errorf("upsert failed: status %d", resp.StatusCode)
	}
	return nil
}

func (c *HTTPClient) setRecordHeaders(req *http.Request) {
	req.Header.Set("apikey", c.apiKey)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
}
