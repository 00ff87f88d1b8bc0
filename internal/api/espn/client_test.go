package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Put(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func testConfig(base string) config.ESPNAPI {
	return config.ESPNAPI{
		SiteURL:   base + "/site",
		CoreURL:   base + "/core",
		Timeout:   2 * time.Second,
		UserAgent: "gridiron-test",
		Timezone:  "America/New_York",
		MaxWeek:   18,
	}
}

func TestClientGetSendsHeadersAndParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "gridiron-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "3", r.URL.Query().Get("week"))
		w.Write([]byte(`{"week":{"number":3}}`))
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL))
	var out struct {
		Week struct {
			Number int `json:"number"`
		} `json:"week"`
	}
	err := c.Get(context.Background(), srv.URL+"/scoreboard", map[string]string{"week": "3"}, &out)

	require.NoError(t, err)
	assert.Equal(t, 3, out.Week.Number)
}

func TestClientGetClassifiesFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/broken":
			w.WriteHeader(http.StatusBadGateway)
		case "/garbage":
			w.Write([]byte(`{not json`))
		}
	}))
	defer srv.Close()

	tests := []struct {
		name   string
		path   string
		kind   FetchErrorKind
		status int
	}{
		{name: "not found", path: "/missing", kind: KindNotFound, status: http.StatusNotFound},
		{name: "http status", path: "/broken", kind: KindHTTPStatus, status: http.StatusBadGateway},
		{name: "parse", path: "/garbage", kind: KindParse},
	}

	c := NewClient(testConfig(srv.URL))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out map[string]any
			err := c.Get(context.Background(), srv.URL+tt.path, nil, &out)

			fe, ok := AsFetchError(err)
			require.True(t, ok, "expected FetchError, got %v", err)
			assert.Equal(t, tt.kind, fe.Kind)
			assert.Equal(t, tt.status, fe.StatusCode)
		})
	}
}

func TestClientGetNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(testConfig(base))
	var out map[string]any
	err := c.Get(context.Background(), base+"/scoreboard", nil, &out)

	fe, ok := AsFetchError(err)
	require.True(t, ok)
	assert.Equal(t, KindNetwork, fe.Kind)
}

func TestClientGetUsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"count":7}`))
	}))
	defer srv.Close()

	m := metrics.New()
	c := NewClient(testConfig(srv.URL), WithCache(newMapCache()), WithMetrics(m))

	for i := 0; i < 3; i++ {
		var out struct {
			Count int `json:"count"`
		}
		require.NoError(t, c.Get(context.Background(), srv.URL+"/teams", map[string]string{"pageSize": "32"}, &out))
		assert.Equal(t, 7, out.Count)
	}

	assert.Equal(t, int32(1), hits.Load())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `gridiron_cache_lookups_total{result="hit"} 2`)
	assert.Contains(t, rec.Body.String(), `gridiron_cache_lookups_total{result="miss"} 1`)
	assert.Contains(t, rec.Body.String(), `gridiron_espn_requests_total{endpoint="teams",outcome="ok"} 1`)
}

func TestClientGetDoesNotCacheErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := newMapCache()
	c := NewClient(testConfig(srv.URL), WithCache(cache))

	var out map[string]any
	assert.Error(t, c.Get(context.Background(), srv.URL+"/scoreboard", nil, &out))
	assert.Error(t, c.Get(context.Background(), srv.URL+"/scoreboard", nil, &out))

	assert.Equal(t, int32(2), hits.Load())
	assert.Empty(t, cache.data)
}

func TestEndpointLabel(t *testing.T) {
	c := NewClient(testConfig("http://espn.test"))
	api := NewAPI(c)

	assert.Equal(t, "scoreboard", labelFor(t, api.scoreboardURL("nfl")))
	assert.Equal(t, "summary", labelFor(t, api.summaryURL("nfl")))
	assert.Equal(t, "teams", labelFor(t, api.teamsURL("nfl")))
	assert.Equal(t, "athletes", labelFor(t, api.teamsURL("nfl")+"/12/athletes"))
	assert.Equal(t, "team", labelFor(t, api.teamsURL("nfl")+"/12"))
}

func labelFor(t *testing.T, raw string) string {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return endpointLabel(u)
}
