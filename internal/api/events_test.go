package api

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvents_StreamsUserUpdates(t *testing.T) {
	ts := setupTestServer(t)
	header, _ := ts.login(t, "ada@example.com")
	token := strings.TrimPrefix(header, "Authorization: Bearer ")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go ts.sseManager.Start(ctx)

	srv := httptest.NewServer(ts)
	defer srv.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+eventsPath+"?"+accessTokenParam+"="+url.QueryEscape(token), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.After(5 * time.Second)
		for {
			select {
			case line, ok := <-lines:
				require.True(t, ok, "stream closed before %q", want)
				if strings.Contains(line, want) {
					return
				}
			case <-deadline:
				t.Fatalf("timed out waiting for %q", want)
			}
		}
	}

	waitFor("event: connected")
	ts.createList(t, header, "Live")
	waitFor("event: user.updated")
	waitFor(`"action":"list.created"`)
}

func TestEvents_RequiresToken(t *testing.T) {
	ts := setupTestServer(t)

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, eventsPath, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
