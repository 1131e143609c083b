package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rizesql/timeserver/internal/assert"
	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/server"
	"github.com/rizesql/timeserver/internal/timeapi"
)

// FixedNow is the instant every harness clock starts at: Thursday 29 February
// 2024, 13:45:30.250 in UTC+8.
var FixedNow = time.Date(2024, time.February, 29, 13, 45, 30, 250000000, time.FixedZone("CST", 8*60*60))

type Harness struct {
	t *testing.T

	Clock  *clock.TestClock
	Logger *logging.Logger
}

func NewHarness(t *testing.T) *Harness {
	t.Helper()

	return &Harness{
		t:      t,
		Clock:  clock.NewTestClock(FixedNow),
		Logger: logging.Noop(),
	}
}

// --- Platform Factories ---

// NewPlatform creates an HTTP platform on the harness clock.
func (h *Harness) NewPlatform(cfg ...timeapi.Config) *timeapi.Platform {
	c := timeapi.DefaultConfig()
	if len(cfg) > 0 {
		c = cfg[0]
	}
	return timeapi.NewPlatform(h.Clock, h.Logger, c)
}

// --- Server Helpers ---

func (h *Harness) NewServer(opts ...server.Option) *server.Server {
	return server.New(h.Logger, opts...)
}

// NewAPIServer returns a server with every time route registered.
func (h *Harness) NewAPIServer() *server.Server {
	srv := h.NewServer()
	timeapi.Register(srv, h.NewPlatform())
	return srv
}

// Call sends req JSON-encoded to route r.
func Call[Req, Res any](t *testing.T, srv *server.Server, r server.Route, headers http.Header, req Req) TestResponse[Res] {
	t.Helper()

	body := new(bytes.Buffer)
	err := json.NewEncoder(body).Encode(req)
	assert.Err(t, err, nil)

	return Do[Res](t, srv, r.Method(), r.Path(), headers, body)
}

// Get requests target, which may carry a query string.
func Get[Res any](t *testing.T, srv *server.Server, target string) TestResponse[Res] {
	t.Helper()
	return Do[Res](t, srv, http.MethodGet, target, nil, nil)
}

// Do sends a raw request through the server's handler chain.
func Do[Res any](t *testing.T, srv *server.Server, method, target string, headers http.Header, body io.Reader) TestResponse[Res] {
	t.Helper()

	rr := httptest.NewRecorder()

	httpReq := httptest.NewRequest(method, target, body)
	if headers != nil {
		httpReq.Header = headers
	}

	srv.Handler().ServeHTTP(rr, httpReq)

	rawBody := rr.Body.Bytes()
	res := TestResponse[Res]{
		Status:  rr.Code,
		Headers: rr.Header(),
		RawBody: string(rawBody),
	}

	if len(rawBody) > 0 {
		var responseBody Res
		if err := json.Unmarshal(rawBody, &responseBody); err == nil {
			res.Body = &responseBody
		}
	}

	return res
}

type TestResponse[TBody any] struct {
	Status  int
	Headers http.Header
	Body    *TBody
	RawBody string
}
