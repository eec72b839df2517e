package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"time"

	"echochamber/types"
	"echochamber/workflow"
)

// APIClient is a thin HTTP client for the echochamber API. The cookie
// jar carries the session cookie between calls.
type APIClient struct {
	baseURL string
	client  *http.Client
}

// NewAPIClient creates a new API client against the given base URL.
func NewAPIClient(baseURL string) *APIClient {
	jar, _ := cookiejar.New(nil)
	return &APIClient{
		baseURL: baseURL,
		client: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
	}
}

type userEnvelope struct {
	User *types.User `json:"user"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// SignUp creates an account. The server logs the verification token.
func (c *APIClient) SignUp(email, password string) error {
	return c.postJSON("/api/auth/signup", map[string]string{
		"email":    email,
		"password": password,
	}, nil, http.StatusCreated)
}

// LogIn authenticates and stores the session cookie in the jar.
func (c *APIClient) LogIn(email, password string) (*types.User, error) {
	var out userEnvelope
	err := c.postJSON("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out, http.StatusOK)
	return out.User, err
}

// Verify marks the account verified and logs in.
func (c *APIClient) Verify(email string) (*types.User, error) {
	var out userEnvelope
	err := c.postJSON("/api/auth/verify", map[string]string{"email": email}, &out, http.StatusOK)
	return out.User, err
}

// LogOut clears the session.
func (c *APIClient) LogOut() error {
	return c.postJSON("/api/auth/logout", map[string]string{}, nil, http.StatusOK)
}

// Generate submits a source URL and/or a local media file for analysis.
func (c *APIClient) Generate(source, filePath string) error {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if source != "" {
		if err := w.WriteField("source", source); err != nil {
			return err
		}
	}
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("failed to open file: %w", err)
		}
		defer f.Close()
		part, err := w.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	resp, err := c.client.Post(c.baseURL+"/api/generate", w.FormDataContentType(), &body)
	if err != nil {
		return fmt.Errorf("failed to submit: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return decodeError(resp)
	}
	return nil
}

// GetStatus fetches the current request state for polling.
func (c *APIClient) GetStatus() (*workflow.Status, error) {
	resp, err := c.client.Get(c.baseURL + "/api/generate/status")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var status workflow.Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &status, nil
}

// GetResult fetches the generated assets once the status is result.
func (c *APIClient) GetResult() (*types.GeneratedAssets, error) {
	resp, err := c.client.Get(c.baseURL + "/api/generate/result")
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var assets types.GeneratedAssets
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &assets, nil
}

// DownloadBundle saves the zip export next to the working directory and
// returns the file name.
func (c *APIClient) DownloadBundle() (string, error) {
	resp, err := c.client.Get(c.baseURL + "/api/generate/bundle")
	if err != nil {
		return "", fmt.Errorf("failed to download bundle: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	name := fmt.Sprintf("echochamber_assets_%s.zip", time.Now().Format("2006-01-02"))
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", err
	}
	return name, nil
}

// Reset discards the held result and returns the account to idle.
func (c *APIClient) Reset() error {
	return c.postJSON("/api/generate/reset", map[string]string{}, nil, http.StatusOK)
}

func (c *APIClient) postJSON(path string, payload any, out any, wantStatus int) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := c.client.Post(c.baseURL+path, "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var e errorEnvelope
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("%s", e.Error)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
}
