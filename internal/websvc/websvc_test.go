package websvc_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/testutil"
	"github.com/ipregion/regiond/internal/rgdtest"
	"github.com/ipregion/regiond/internal/websvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Start(t *testing.T) {
	const addr = "127.0.0.1:8082"

	refreshed := false
	c := &websvc.Config{
		Logger: slogutil.NewDiscardLogger(),
		Resolver: &rgdtest.RegionResolver{
			OnResolveRegion: func(_ context.Context, ip string) (name string, ok bool) {
				if ip == "10.0.1.5" {
					return "US West (Oregon)", true
				}

				return "", false
			},
		},
		Refreshers: websvc.Refreshers{
			"ranges": &rgdtest.Refresher{
				OnRefresh: func(_ context.Context) (err error) {
					refreshed = true

					return nil
				},
			},
		},
		APIAddr:        addr,
		PprofAddr:      addr,
		PrometheusAddr: addr,
	}

	svc := websvc.New(c)
	require.NotNil(t, svc)

	var err error
	require.NotPanics(t, func() {
		err = svc.Start(testutil.ContextWithTimeout(t, rgdtest.Timeout))
	})
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, func() (err error) {
		return svc.Shutdown(testutil.ContextWithTimeout(t, rgdtest.Timeout))
	})

	client := http.Client{
		Timeout: 2 * time.Second,
	}

	var resp *http.Response
	var body []byte

	// First check the health-check URL.  As the service could not be ready
	// yet, check for it periodically.
	require.Eventually(t, func() bool {
		resp, err = client.Get(fmt.Sprintf("http://%s/health-check", addr))
		return err == nil
	}, 1*time.Second, 100*time.Millisecond)

	body = readRespBody(t, resp)
	assert.Equal(t, []byte("OK\n"), body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Check the region API.
	resp, err = client.Get(fmt.Sprintf("http://%s/v1/region?ip=10.0.1.5", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []byte(`{"ip":"10.0.1.5","region":"US West (Oregon)"}`+"\n"), body)

	resp, err = client.Get(fmt.Sprintf("http://%s/v1/region?ip=203.0.113.1", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, []byte(`{"error":"no matching range"}`+"\n"), body)

	resp, err = client.Get(fmt.Sprintf("http://%s/v1/region", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, []byte(`{"error":"no ip query parameter"}`+"\n"), body)

	// Check the region listing.
	resp, err = client.Get(fmt.Sprintf("http://%s/v1/regions", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"gamelift.eu-west-1.amazonaws.com"`)
	assert.Contains(t, string(body), `"stable":`)

	// Check the pprof URL.
	resp, err = client.Get(fmt.Sprintf("http://%s/debug/pprof/", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.True(t, len(body) > 0)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Check the prometheus URL.
	resp, err = client.Get(fmt.Sprintf("http://%s/metrics", addr))
	require.NoError(t, err)

	body = readRespBody(t, resp)
	assert.True(t, len(body) > 0)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Check the refresh API.
	reqBody := strings.NewReader(`{"ids":["ranges"]}`)
	urlStr := fmt.Sprintf("http://%s/debug/api/refresh", addr)
	resp, err = client.Post(urlStr, "application/json", reqBody)
	require.NoError(t, err)

	assert.True(t, refreshed)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body = readRespBody(t, resp)
	assert.Equal(t, []byte(`{"results":{"ranges":"ok"}}`+"\n"), body)
}

// readRespBody is a helper function that reads and returns body from
// response.
func readRespBody(t testing.TB, resp *http.Response) (body []byte) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	testutil.CleanupAndRequireSuccess(t, resp.Body.Close)

	return body
}
