package e2e_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// doGet issues a GET against the server under test.
func doGet(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := env.httpClient.Get(env.baseURL + path)
	require.NoError(t, err, "GET %s", path)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

// assertStatus fails with the body when the status is not expected.
func assertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", expected, resp.StatusCode, body)
	}
}

// assertJSON decodes the response body into target.
func assertJSON(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

// requireEmbedded skips tests that inspect the embedded run's files.
func requireEmbedded(t *testing.T) {
	t.Helper()
	if !env.embedded {
		t.Skip("needs the embedded pipeline")
	}
}

//Personal.AI order the ending
