package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	reporterToken := ts.signUpAndSignIn(t, "test_user", "test_pass")

	// Raising a flag requires a session.
	resp, _ := ts.doJSON(t, http.MethodPost, "/v1/communities/organization_flags", "", map[string]string{
		"target_id": "some-org",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, raw := ts.doJSON(t, http.MethodPost, "/v1/communities/organization_flags", reporterToken, map[string]string{
		"target_id": "some-org",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var flag struct {
		ID         string `json:"id"`
		TargetKind string `json:"target_kind"`
	}
	unmarshal(t, raw, &flag)
	require.Equal(t, "organization", flag.TargetKind)

	resp, raw = ts.doJSON(t, http.MethodGet, "/v1/communities/organization_flags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	count, _ := listOf(t, raw)
	require.Equal(t, 1, count)

	// The flag lives under its own kind only.
	resp, raw = ts.doJSON(t, http.MethodGet, "/v1/events/event_flags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	count, _ = listOf(t, raw)
	require.Equal(t, 0, count)

	// Non-staff delete is 401, even for the reporter.
	resp, _ = ts.doJSON(t, http.MethodDelete, "/v1/communities/organization_flag/"+flag.ID, reporterToken, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	ts.promoteToStaff(t, "test_user")
	resp, _ = ts.doJSON(t, http.MethodDelete, "/v1/communities/organization_flag/"+flag.ID, reporterToken, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Deleting again is a 404.
	resp, _ = ts.doJSON(t, http.MethodDelete, "/v1/communities/organization_flag/"+flag.ID, reporterToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUserFlags(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signUpAndSignIn(t, "test_user", "test_pass")

	resp, _ := ts.doJSON(t, http.MethodPost, "/v1/auth/user_flags", token, map[string]string{
		"target_id": "some-user",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := ts.doJSON(t, http.MethodGet, "/v1/auth/user_flags", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	count, results := listOf(t, raw)
	require.Equal(t, 1, count)
	require.Equal(t, "user", results[0]["target_kind"])
}
