package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	allocation "allocation-tracker/internal/allocationService"
	"allocation-tracker/internal/auth"
	"allocation-tracker/internal/events"
	"allocation-tracker/internal/lifecycle"
	"allocation-tracker/internal/reports"
	"allocation-tracker/internal/repository"
	"allocation-tracker/internal/server"
	"allocation-tracker/internal/throttle"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "integration-secret"

// capturedPublisher records winner payloads instead of sending them to a broker
type capturedPublisher struct {
	mu       sync.Mutex
	messages map[string][]any
}

func (p *capturedPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages[key] = append(p.messages[key], v)
	return nil
}

func (p *capturedPublisher) Close() error { return nil }

func (p *capturedPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages[key])
}

// TestEnv is the full application wired on the in-memory store
type TestEnv struct {
	Router   *gin.Engine
	Repo     *repository.MemoryRepo
	Hub      *events.Hub
	Winners  *capturedPublisher
	verifier *auth.Verifier
}

// SetupTestEnv initializes the router with in-memory repository for integration testing.
func SetupTestEnv(t *testing.T, rateLimit int) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	hub := events.NewHub(16)
	t.Cleanup(hub.Close)
	winners := &capturedPublisher{messages: map[string][]any{}}
	verifier := auth.NewVerifier(testSecret)

	router := server.SetupRouter(server.Dependencies{
		Claims:          allocation.NewAllocationService(repo, hub, allocation.WithRetry(3, time.Millisecond)),
		Lifecycle:       lifecycle.NewLifecycleService(repo, hub),
		Reports:         reports.NewReportsService(repo, winners, 5),
		Stream:          hub,
		Verifier:        verifier,
		Limiter:         throttle.NewMemoryLimiter(rateLimit, time.Minute),
		RequestTimeout:  5 * time.Second,
		StreamHeartbeat: time.Second,
	})
	return &TestEnv{Router: router, Repo: repo, Hub: hub, Winners: winners, verifier: verifier}
}

// Token issues a bearer token for userID with role
func (e *TestEnv) Token(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := e.verifier.Issue(userID, role, time.Hour)
	require.NoError(t, err)
	return token
}

// ExecuteRequestAndParse executes an HTTP request on the router as token and parses the response
func (e *TestEnv) ExecuteRequestAndParse(t *testing.T, token, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	e.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// UploadCSV posts content as the multipart "file" field
func (e *TestEnv) UploadCSV(t *testing.T, token, url, content string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "items.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp, w
}

// data returns the data member of a success envelope as an object
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no object data: %v", resp)
	return d
}
