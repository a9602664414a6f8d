package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quick-chat-relay/internal/handlers"
	"quick-chat-relay/internal/models"
)

const testOrigin = "https://quick-chat-app-oq7b.vercel.app"

type echoGenerator struct{}

func (echoGenerator) GenerateReply(_ context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

func newTestRouter() http.Handler {
	return New(handlers.NewChatHandler(echoGenerator{}, 0), testOrigin)
}

func chatRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestChatRoute_AllowedOrigin(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, chatRequest(testOrigin))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, testOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	var resp models.ChatResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "echo: hello", resp.Reply)
}

func TestChatRoute_DisallowedOriginStillServedWithoutCORSHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, chatRequest("https://evil.example.com"))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Credentials"))
}

func TestChatRoute_NonBrowserRequest(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, chatRequest(""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatRoute_Preflight(t *testing.T) {
	tests := []struct {
		name      string
		origin    string
		wantAllow string
	}{
		{"allowed origin", testOrigin, testOrigin},
		{"disallowed origin", "http://localhost:5173", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type, Authorization")

			rr := httptest.NewRecorder()
			newTestRouter().ServeHTTP(rr, req)

			assert.Equal(t, tc.wantAllow, rr.Header().Get("Access-Control-Allow-Origin"))
			if tc.wantAllow != "" {
				assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
				assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
			}
		})
	}
}

func TestChatRoute_WrongMethod(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestHealthRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
