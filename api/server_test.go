package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echochamber/auth"
	"echochamber/generate"
	"echochamber/types"
	"echochamber/workflow"
)

type stubGenerator struct {
	reply []byte
}

func (g *stubGenerator) Generate(ctx context.Context, req generate.Request) ([]byte, error) {
	return g.reply, nil
}

func (g *stubGenerator) ModelName() string { return "stub" }

// stubReply conforms to the declared response schema: every required
// member present, clip arrays empty but not absent.
const stubReply = `{
	"campaignStrategy": {"targetAudience": "devs", "brandVoice": "Direct", "contentPillars": ["a"], "postingSchedule": "daily"},
	"seoStrategy": {"primaryKeyword": "k", "secondaryKeywords": [], "suggestedTags": [], "metaDescription": "m"},
	"summary": "A summary.",
	"transcript": "A transcript.",
	"keyTakeaways": ["one", "two"],
	"videoClips": [],
	"audiograms": [],
	"socialPosts": [{"id": "p1", "platform": "X", "content": "post"}],
	"emailDraft": "Subject: hello"
}`

// newTestServer wires a full server over the in-memory store and a stub
// model, plus an HTTP client with a cookie jar to carry the session.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := auth.NewMemoryRepository()
	t.Cleanup(func() { repo.Close() })

	srv := NewServer(auth.NewService(repo), generate.NewBuilder(&stubGenerator{reply: []byte(stubReply)}), Config{})
	ts := httptest.NewServer(NewRouter(srv))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return ts, &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func postSource(t *testing.T, client *http.Client, url, source string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("source", source))
	require.NoError(t, w.Close())
	resp, err := client.Post(url, w.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func signUpAndVerify(t *testing.T, client *http.Client, baseURL, email string) {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/auth/signup", gin.H{"email": email, "password": "hunter22"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, baseURL+"/api/auth/verify", gin.H{"email": email})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "echochamber", body["service"])
}

func TestAuthFlow(t *testing.T) {
	ts, client := newTestServer(t)

	// Login before signup fails.
	resp := postJSON(t, client, ts.URL+"/api/auth/login", gin.H{"email": "a@b.com", "password": "hunter22"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/auth/signup", gin.H{"email": "a@b.com", "password": "hunter22"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Unverified accounts cannot log in.
	resp = postJSON(t, client, ts.URL+"/api/auth/login", gin.H{"email": "a@b.com", "password": "hunter22"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Verification logs the user in.
	resp = postJSON(t, client, ts.URL+"/api/auth/verify", gin.H{"email": "a@b.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		User types.User `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()
	assert.Equal(t, "a@b.com", out.User.Email)
	assert.Empty(t, out.User.PasswordHash)

	// Session cookie resolves the current user.
	resp, err := client.Get(ts.URL + "/api/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Logout invalidates it.
	resp = postJSON(t, client, ts.URL+"/api/auth/logout", gin.H{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/auth/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGenerateRequiresSession(t *testing.T) {
	ts, client := newTestServer(t)

	resp := postSource(t, client, ts.URL+"/api/generate", "https://youtu.be/abc")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGenerateRejectsUnknownInput(t *testing.T) {
	ts, client := newTestServer(t)
	signUpAndVerify(t, client, ts.URL, "a@b.com")

	resp := postSource(t, client, ts.URL+"/api/generate", "not a url at all")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A rejected submission never leaves idle.
	resp, err := client.Get(ts.URL + "/api/generate/status")
	require.NoError(t, err)
	var status workflow.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	resp.Body.Close()
	assert.Equal(t, workflow.PhaseIdle, status.Phase)
}

func TestGenerateHappyPath(t *testing.T) {
	ts, client := newTestServer(t)
	signUpAndVerify(t, client, ts.URL, "a@b.com")

	resp := postSource(t, client, ts.URL+"/api/generate", "https://www.youtube.com/watch?v=abc")
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()

	// The stub model answers immediately; poll until the result lands.
	require.Eventually(t, func() bool {
		resp, err := client.Get(ts.URL + "/api/generate/status")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		var status workflow.Status
		if json.NewDecoder(resp.Body).Decode(&status) != nil {
			return false
		}
		return status.HasResult
	}, 5*time.Second, 20*time.Millisecond)

	resp, err := client.Get(ts.URL + "/api/generate/result")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var assets types.GeneratedAssets
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&assets))
	resp.Body.Close()

	// The server stamps classification over the model output.
	assert.Equal(t, types.InputYouTube, assets.InputType)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", assets.Source)
	assert.Equal(t, "A summary.", assets.Summary)

	// Bundle export serves the archive.
	resp, err = client.Get(ts.URL + "/api/generate/bundle")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	// Reset returns to idle and drops the result.
	resp = postJSON(t, client, ts.URL+"/api/generate/reset", gin.H{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get(ts.URL + "/api/generate/result")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestGenerateMissingInput(t *testing.T) {
	ts, client := newTestServer(t)
	signUpAndVerify(t, client, ts.URL, "a@b.com")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.Close())
	resp, err := client.Post(ts.URL+"/api/generate", w.FormDataContentType(), &body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
