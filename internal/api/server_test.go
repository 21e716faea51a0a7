package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FilmCut/internal/cache"
	"github.com/piwi3910/FilmCut/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	s := New(Config{
		Cache:         c,
		Defaults:      model.DefaultPackingOptions(),
		Rolls:         model.RollCatalog{Rolls: []model.FilmRoll{{ID: "w", Name: "Wide", Width: 1520, Length: 30000}}},
		MaxConcurrent: 2,
	})
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ok", out["status"])
}

func TestParse(t *testing.T) {
	ts := newTestServer(t)

	resp, out := post(t, ts.URL+"/api/parse", `{"text":"500x400x3\nabc"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["success"])
	assert.Len(t, out["pieces"], 1)

	errs := out["errors"].([]interface{})
	require.Len(t, errs, 1)
	assert.Equal(t, float64(2), errs[0].(map[string]interface{})["line_number"])
}

func TestPackStatusCodes(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"empty body", ``, http.StatusBadRequest},
		{"truncated", `{"pieces":`, http.StatusBadRequest},
		{"syntax", `{"pieces":[{"width":aaa}]}`, http.StatusBadRequest},
		{"no pieces", `{}`, http.StatusUnprocessableEntity},
		{"wrong type", `{"pieces":"500x400"}`, http.StatusUnprocessableEntity},
		{"bad text", `{"text":"abc"}`, http.StatusUnprocessableEntity},
		{"zero width", `{"pieces":[{"width":0,"height":5}]}`, http.StatusUnprocessableEntity},
		{"bad options", `{"pieces":[{"width":5,"height":5}],"options":{"strip_width":-1}}`, http.StatusUnprocessableEntity},
		{"too big", `{"pieces":[{"width":5000,"height":5000}]}`, http.StatusUnprocessableEntity},
		{"huge quantity", `{"pieces":[{"width":1,"height":1,"quantity":1000000000}]}`, http.StatusUnprocessableEntity},
		{"ok", `{"pieces":[{"width":500,"height":400,"quantity":2}]}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/pack", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestPackErrorDetails(t *testing.T) {
	ts := newTestServer(t)

	_, out := post(t, ts.URL+"/api/pack", `{"pieces":[{"width":100,"height":100},{"width":5000,"height":5000}]}`)
	assert.Equal(t, []interface{}{"p2-1"}, out["unplaceable"])

	_, out = post(t, ts.URL+"/api/pack", `{"pieces":[{"width":5,"height":5}],"options":{"strip_width":-1}}`)
	assert.Equal(t, "strip_width", out["field"])

	_, out = post(t, ts.URL+"/api/pack", `{"text":"500x400\n0x10"}`)
	lines := out["lines"].([]interface{})
	require.Len(t, lines, 1)
	assert.Equal(t, float64(2), lines[0].(map[string]interface{})["line_number"])
}

func TestRequestLimits(t *testing.T) {
	s := New(Config{
		Defaults:     model.DefaultPackingOptions(),
		MaxBodyBytes: 128,
		MaxInstances: 5,
	})
	ts := httptest.NewServer(s)
	t.Cleanup(ts.Close)

	resp, out := post(t, ts.URL+"/api/pack", `{"pieces":[{"width":10,"height":10,"quantity":6}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, out["error"], "more than 5 pieces")

	resp, _ = post(t, ts.URL+"/api/pack", `{"pieces":[{"width":10,"height":10,"quantity":5}]}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	long := `{"text":"` + strings.Repeat("100x100\\n", 40) + `"}`
	resp, out = post(t, ts.URL+"/api/parse", long)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	assert.Equal(t, "request body too large", out["error"])
}

func TestPackFromTextIsCached(t *testing.T) {
	ts := newTestServer(t)
	body := `{"text":"500x400x2 window\n300x900 door"}`

	resp, first := post(t, ts.URL+"/api/pack", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, first["cached"])

	placements := first["placements"].([]interface{})
	require.Len(t, placements, 3)
	ids := make([]string, len(placements))
	for i, p := range placements {
		ids[i] = p.(map[string]interface{})["instance_id"].(string)
	}
	assert.Equal(t, []string{"p1-1", "p1-2", "p2-1"}, ids)

	resp, second := post(t, ts.URL+"/api/pack", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, second["cached"])
	assert.Equal(t, first["placements"], second["placements"])
	assert.Equal(t, first["used_length"], second["used_length"])
}

func TestCompare(t *testing.T) {
	ts := newTestServer(t)

	resp, out := post(t, ts.URL+"/api/compare", `{
		"pieces": [{"width": 700, "height": 300, "quantity": 4}],
		"options": {"strip_width": 1220, "max_strip_length": 30000, "allow_rotation": true}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scenarios := out["scenarios"].([]interface{})
	require.Len(t, scenarios, 3, "current, rotation toggled and the wide roll")
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.(map[string]interface{})["scenario"].(map[string]interface{})["name"].(string)
	}
	assert.Equal(t, "Current Settings", names[0])
	assert.Equal(t, "No Rotation", names[1])
	assert.Contains(t, names[2], "Wide")
	assert.GreaterOrEqual(t, out["best"], float64(0))
}

func TestStatusForPinConflict(t *testing.T) {
	status, resp := statusFor(&model.PinConflictError{InstanceID: "a-1", Reason: "overlaps another pinned piece"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, resp.Error, "a-1")
}

func TestLimiterRejectsWhenContextEnds(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	h := limiter(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		w.WriteHeader(http.StatusOK)
	}))

	done := make(chan int)
	go func() {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		done <- rec.Code
	}()
	<-entered

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil).WithContext(ctx))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	close(release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestLimiterDisabled(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	limiter(0)(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, called)
}
