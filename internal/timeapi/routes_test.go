package timeapi_test

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rizesql/timeserver/internal/assert"
	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/envelope"
	"github.com/rizesql/timeserver/internal/server"
	"github.com/rizesql/timeserver/internal/snapshot"
	"github.com/rizesql/timeserver/internal/testkit"
	"github.com/rizesql/timeserver/internal/timeapi"
)

type envelopeResponse struct {
	ID     string `json:"id"`
	Result *struct {
		CurrentTime map[string]any `json:"current_time"`
	} `json:"result"`
	Error *envelope.Error `json:"error"`
}

func TestIndex(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[timeapi.IndexResponse](t, srv, "/")

	assert.Equal(t, res.Status, http.StatusOK)
	if res.Body == nil {
		t.Fatal("response body is nil")
	}
	assert.True(t, res.Body.Message != "")
	for _, path := range []string{"/time", "/time/iso", "/time/unix", "/time/human", "/mcp"} {
		_, ok := res.Body.Endpoints[path]
		assert.True(t, ok)
	}
}

func TestTime(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[snapshot.Snapshot](t, srv, "/time")

	assert.Equal(t, res.Status, http.StatusOK)
	if res.Body == nil {
		t.Fatal("response body is nil")
	}

	want := snapshot.Compute(testkit.FixedNow, timeapi.DefaultConfig().Snapshot)
	if diff := cmp.Diff(want, *res.Body); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, res.Body.Human, "2024年02月29日 13:45:30")
	assert.Equal(t, res.Body.DayOfWeek, "星期四")
	assert.Equal(t, h.Clock.Reads(), 1)
}

func TestISO(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[timeapi.ISOResponse](t, srv, "/time/iso")

	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, res.Body.ISO, "2024-02-29T13:45:30.250+08:00")
	assert.Equal(t, res.RawBody, `{"iso":"2024-02-29T13:45:30.250+08:00"}`+"\n")
}

func TestUnix(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[timeapi.UnixResponse](t, srv, "/time/unix")

	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, res.Body.Unix, testkit.FixedNow.Unix())
}

func TestUnix_SystemClock(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewServer()
	timeapi.Register(srv, timeapi.NewPlatform(clock.New(), h.Logger, timeapi.DefaultConfig()))

	res := testkit.Get[timeapi.UnixResponse](t, srv, "/time/unix")
	now := time.Now().Unix()

	assert.Equal(t, res.Status, http.StatusOK)
	diff := res.Body.Unix - now
	assert.True(t, diff >= -2 && diff <= 2)
}

func TestHuman(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"default pattern", "/time/human", "2024年02月29日 13:45:30"},
		{"year only", "/time/human?format=YYYY", "2024"},
		{"escaped literal", "/time/human?format=%5BQ%5DQ+YYYY", "Q1 2024"},
		{"html kept", "/time/human?format=%3Cb%3EYYYY%3C%2Fb%3E", "<b>2024</b>"},
		{"empty format", "/time/human?format=", "2024年02月29日 13:45:30"},
		{"overlong format", "/time/human?format=" + strings.Repeat("Y", 300), "2024年02月29日 13:45:30"},
		{"lone bracket", "/time/human?format=YYYY+%5B", "2024 ["},
		{"localized long date", "/time/human?format=LL", "2024年2月29日"},
		{"localized with time", "/time/human?format=LLLL", "2024年2月29日星期四下午1点45分"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := testkit.Get[timeapi.HumanResponse](t, srv, tt.target)

			assert.Equal(t, res.Status, http.StatusOK)
			assert.Equal(t, res.Body.Human, tt.want)
		})
	}
}

func TestHuman_CurrentYear(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewServer()
	timeapi.Register(srv, timeapi.NewPlatform(clock.New(), h.Logger, timeapi.DefaultConfig()))

	res := testkit.Get[timeapi.HumanResponse](t, srv, "/time/human?format=YYYY")

	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, len(res.Body.Human), 4)
	assert.Equal(t, res.Body.Human, strconv.Itoa(time.Now().Year()))
}

func TestEnvelope(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()
	route := &timeapi.EnvelopeRoute{}

	res := testkit.Call[map[string]string, envelopeResponse](t, srv, route, nil, map[string]string{"id": "abc"})

	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, res.Body.ID, "abc")
	assert.True(t, res.Body.Error == nil)

	current := res.Body.Result.CurrentTime
	assert.Equal(t, current["iso"], any("2024-02-29T13:45:30.250+08:00"))
	assert.Equal(t, current["unix"], any(float64(testkit.FixedNow.Unix())))
	for _, key := range []string{"human", "utc", "timezone", "day_of_week", "day_of_year", "week_of_year"} {
		_, ok := current[key]
		assert.True(t, ok)
	}
	_, hasDST := current["is_dst"]
	_, hasLeap := current["is_leap_year"]
	assert.Equal(t, hasDST, false)
	assert.Equal(t, hasLeap, false)
}

func TestEnvelope_DefaultID(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	for _, body := range []string{"", "{}", `{"id":null}`, `{"other":1}`} {
		res := testkit.Do[envelopeResponse](t, srv, http.MethodPost, "/mcp", nil, strings.NewReader(body))

		assert.Equal(t, res.Status, http.StatusOK)
		assert.Equal(t, res.Body.ID, envelope.DefaultID)
	}
}

func TestEnvelope_Malformed(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	for _, body := range []string{"not json", `{"id":`, `[1,2]`, `{"id":"a"} trailing`} {
		t.Run(body, func(t *testing.T) {
			res := testkit.Do[envelopeResponse](t, srv, http.MethodPost, "/mcp", nil, strings.NewReader(body))

			assert.Equal(t, res.Status, http.StatusBadRequest)
			if res.Body == nil {
				t.Fatalf("body is not JSON: %q", res.RawBody)
			}
			assert.Equal(t, res.Body.ID, envelope.ErrorID)
			assert.True(t, res.Body.Result == nil)
			assert.Equal(t, res.Body.Error.Code, envelope.CodeInvalidRequest)
		})
	}
	assert.Equal(t, h.Clock.Reads(), 0)
}

func TestEnvelope_NonStringID(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	tests := []struct {
		body string
		want any
	}{
		{`{"jsonrpc":"2.0","id":42,"method":"tools/call"}`, float64(42)},
		{`{"id":true}`, true},
		{`{"id":0}`, envelope.DefaultID},
		{`{"id":false}`, envelope.DefaultID},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			res := testkit.Do[map[string]any](t, srv, http.MethodPost, "/mcp", nil, strings.NewReader(tt.body))

			assert.Equal(t, res.Status, http.StatusOK)
			assert.Equal(t, (*res.Body)["id"], tt.want)
			_, hasResult := (*res.Body)["result"]
			assert.True(t, hasResult)
		})
	}
}

func TestEnvelope_BodyTooLarge(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewServer(server.WithMaxReqBodySize(16))
	timeapi.Register(srv, h.NewPlatform())

	body := `{"id":"` + strings.Repeat("a", 64) + `"}`
	res := testkit.Do[envelopeResponse](t, srv, http.MethodPost, "/mcp", nil, strings.NewReader(body))

	assert.Equal(t, res.Status, http.StatusBadRequest)
	assert.Equal(t, res.Body.Error.Code, envelope.CodeInvalidRequest)
}

func TestEnvelope_WrongMethod(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[server.ErrorResponse](t, srv, "/mcp")

	assert.Equal(t, res.Status, http.StatusMethodNotAllowed)
}

func TestCORS(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	headers := http.Header{}
	headers.Set("Origin", "https://example.org")
	res := testkit.Do[snapshot.Snapshot](t, srv, http.MethodGet, "/time", headers, nil)

	assert.Equal(t, res.Status, http.StatusOK)
	assert.Equal(t, res.Headers.Get("Access-Control-Allow-Origin"), "*")

	headers.Set("Access-Control-Request-Method", http.MethodPost)
	pre := testkit.Do[any](t, srv, http.MethodOptions, "/mcp", headers, nil)
	assert.Equal(t, pre.Status, http.StatusNoContent)
	assert.Equal(t, pre.Headers.Get("Access-Control-Allow-Origin"), "*")
}

func TestHealthAndMetrics(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	health := testkit.Get[map[string]string](t, srv, "/healthz")
	assert.Equal(t, health.Status, http.StatusOK)
	assert.Equal(t, (*health.Body)["status"], "ok")

	testkit.Get[timeapi.UnixResponse](t, srv, "/time/unix")

	m := testkit.Get[any](t, srv, "/metrics")
	assert.Equal(t, m.Status, http.StatusOK)
	assert.Contains(t, m.RawBody, `timeserver_http_requests_total{code="200",method="GET",route="/time/unix"}`)
}

func TestUnknownRoute(t *testing.T) {
	h := testkit.NewHarness(t)
	srv := h.NewAPIServer()

	res := testkit.Get[server.ErrorResponse](t, srv, "/time/nope")

	assert.Equal(t, res.Status, http.StatusNotFound)
	assert.Equal(t, res.Body.Error, server.ErrNotFound.Error())
}

func TestRoutes(t *testing.T) {
	h := testkit.NewHarness(t)

	seen := map[string]bool{}
	for _, r := range timeapi.Routes(h.NewPlatform()) {
		seen[r.Method()+" "+r.Path()] = true
	}

	for _, key := range []string{"GET /", "GET /time", "GET /time/iso", "GET /time/unix", "GET /time/human", "POST /mcp", "GET /healthz"} {
		assert.True(t, seen[key])
	}

	raw, err := json.Marshal(timeapi.DefaultConfig().Snapshot.Pattern)
	assert.Err(t, err, nil)
	assert.Contains(t, string(raw), "YYYY")
}
