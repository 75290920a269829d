package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/activist-org/activist-api/internal/api/cache"
	httpapi "github.com/activist-org/activist-api/internal/api/http"
	"github.com/activist-org/activist-api/internal/api/mail"
	"github.com/activist-org/activist-api/internal/api/service"
	"github.com/activist-org/activist-api/internal/api/store"
	"github.com/activist-org/activist-api/internal/api/store/drivers/sqlite"
	"github.com/activist-org/activist-api/pkg/cryptox"
)

// testServer is the whole API wired in-process against a throwaway sqlite
// database and an in-memory cache.
type testServer struct {
	*httptest.Server
	store store.Store
	cache cache.Cache
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dir := t.TempDir()
	cryptox.SetPepperPath(filepath.Join(dir, "pepper.key"))

	st, err := sqlite.NewStore(filepath.Join(dir, "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	mem := cache.NewMemory(cache.DefaultTTL)
	logger := slog.Default()
	notifier := &service.MutationNotifier{Cache: mem}

	router := httpapi.NewRouter("test", st, mem, logger)
	router.AuthService = &service.AuthService{Store: st, Mailer: mail.NewLogMailer(logger)}
	router.OrganizationService = &service.OrganizationService{Store: st, Notifier: notifier}
	router.GroupService = &service.GroupService{Store: st, Notifier: notifier}
	router.EventService = &service.EventService{Store: st, Notifier: notifier}
	router.DiscussionService = &service.DiscussionService{Store: st}
	router.ResourceService = &service.ResourceService{Store: st}
	router.FlagService = &service.FlagService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: st, cache: mem}
}

// doJSON performs a request against the test server. A non-empty token is
// sent as a bearer credential.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

// signUpAndSignIn registers a user through the API, confirms the email with
// the code held in the store, signs in and returns the session token.
func (ts *testServer) signUpAndSignIn(t *testing.T, username, password string) string {
	t.Helper()
	ctx := context.Background()

	resp, _ := ts.doJSON(t, http.MethodPost, "/v1/auth/sign_up", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	user, err := ts.store.Users().GetUserByUsername(ctx, username)
	require.NoError(t, err)
	require.NotNil(t, user.VerificationCode)

	resp, _ = ts.doJSON(t, http.MethodPost, "/v1/auth/verify_email/"+*user.VerificationCode, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	return ts.signIn(t, username, password)
}

func (ts *testServer) signIn(t *testing.T, username, password string) string {
	t.Helper()

	resp, raw := ts.doJSON(t, http.MethodPost, "/v1/auth/sign_in", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

// promoteToStaff flips the staff bit directly in the database.
func (ts *testServer) promoteToStaff(t *testing.T, username string) {
	t.Helper()

	user, err := ts.store.Users().GetUserByUsername(context.Background(), username)
	require.NoError(t, err)
	require.NoError(t, ts.store.Users().SetStaff(context.Background(), user.ID, true))
}

func unmarshal(t *testing.T, raw []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}

// detailOf decodes the {"detail": ...} error body.
func detailOf(t *testing.T, raw []byte) string {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Detail
}

// listOf decodes the {"count": N, "results": [...]} envelope.
func listOf(t *testing.T, raw []byte) (int, []map[string]any) {
	t.Helper()

	var body struct {
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Count, body.Results
}
