package webapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *MemoryStore) {
	t.Helper()

	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)

	store := NewMemoryStore()
	return NewServer(NewClient(testBackend, httpClient), store, 6), store
}

func TestHandleLoginSetsSession(t *testing.T) {
	server, store := newTestServer(t)

	httpmock.RegisterResponder(http.MethodPost, testBackend+"/login",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]string{"access_token": "tok-123"}))

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"aisyah","password":"secret"}`))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, sessionCookie, cookies[0].Name)

	session, err := store.Get(req.Context(), cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "tok-123", session.Token)
	assert.Equal(t, "aisyah", session.Username)
}

func TestHandleLoginSurfacesBackendDetail(t *testing.T) {
	server, _ := newTestServer(t)

	httpmock.RegisterResponder(http.MethodPost, testBackend+"/login",
		httpmock.NewJsonResponderOrPanic(http.StatusUnauthorized, map[string]string{"detail": "Incorrect username or password"}))

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"username":"aisyah","password":"wrong"}`))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Incorrect username or password", body["detail"])
}

func TestHandleChatAppendsHistory(t *testing.T) {
	server, store := newTestServer(t)

	httpmock.RegisterResponder(http.MethodPost, testBackend+"/chat",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{"summary": "Hello from ZUS."}))

	req := httptest.NewRequest(http.MethodPost, "/api/chat",
		strings.NewReader(`{"prompt":"hi"}`))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hello from ZUS.", body["reply"])

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	session, err := store.Get(req.Context(), cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Len(t, session.Messages, 2)
	assert.Equal(t, "user", session.Messages[0].Role)
	assert.Equal(t, "assistant", session.Messages[1].Role)
}

func TestHandleChatRequiresPrompt(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t)

	httpmock.RegisterResponder(http.MethodGet, testBackend+"/health",
		httpmock.NewStringResponder(http.StatusOK, `{"status":"ok"}`))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"connected":true`)
}

func TestHandleIndexServesChatPage(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "ZUS Coffee Chatbot")
}

func TestHandleLogoutClearsSession(t *testing.T) {
	server, store := newTestServer(t)

	require.NoError(t, store.Save(context.Background(), "sid-1", &Session{Username: "aisyah", Token: "tok"}))

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "sid-1"})
	rec := httptest.NewRecorder()

	server.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	session, err := store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Nil(t, session)
}
