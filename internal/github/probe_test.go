package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProber(t *testing.T, mux *http.ServeMux) *Prober {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	prober, err := NewProber(Options{
		Token:      "secret",
		APIURL:     server.URL,
		HTTPClient: server.Client(),
	})
	require.NoError(t, err)
	return prober
}

func TestProber_Ping(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status int
	}{
		"ok":           {status: http.StatusOK},
		"unauthorized": {status: http.StatusUnauthorized},
		"server error": {status: http.StatusInternalServerError},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("/api/v3/rate_limit", func(w http.ResponseWriter, r *http.Request) {
				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(t, w, map[string]any{"resources": map[string]any{}})
			})

			assert.NoError(t, newTestProber(t, mux).Ping(context.Background()))
		})
	}
}

func TestProber_PingUnreachable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NewServeMux())
	url := server.URL
	server.Close()

	prober, err := NewProber(Options{APIURL: url})
	require.NoError(t, err)

	assert.Error(t, prober.Ping(context.Background()))
}

func TestProber_AuthenticatedUser(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{"login": "octocat"})
	})

	login, err := newTestProber(t, mux).AuthenticatedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "octocat", login)
}

func TestProber_AuthenticatedUserRejected(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := newTestProber(t, mux).AuthenticatedUser(context.Background())
	assert.Error(t, err)
}
