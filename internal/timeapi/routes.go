package timeapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rizesql/timeserver/internal/envelope"
	"github.com/rizesql/timeserver/internal/o11y/metrics"
	"github.com/rizesql/timeserver/internal/server"
)

type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// IndexRoute - documents the available routes
type IndexRoute struct{}

func (r *IndexRoute) Method() string { return http.MethodGet }
func (r *IndexRoute) Path() string   { return "/" }
func (r *IndexRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		_ = server.Encode(w, http.StatusOK, IndexResponse{
			Message: "Welcome to the MCP time server",
			Endpoints: map[string]string{
				"/time":       "current time in every supported format",
				"/time/iso":   "current time in ISO 8601",
				"/time/unix":  "current Unix timestamp in seconds",
				"/time/human": "human readable time; override the pattern with ?format=",
				"/mcp":        "POST an envelope {\"id\": ...} and receive {id, result: {current_time}}",
			},
		})
	}
}

// TimeRoute - every field of the snapshot
type TimeRoute struct{ p *Platform }

func (r *TimeRoute) Method() string { return http.MethodGet }
func (r *TimeRoute) Path() string   { return "/time" }
func (r *TimeRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		snap := r.p.take(r.p.Config.Snapshot)
		metrics.ObserveSnapshot("http")
		_ = server.Encode(w, http.StatusOK, snap)
	}
}

type ISOResponse struct {
	ISO string `json:"iso"`
}

type ISORoute struct{ p *Platform }

func (r *ISORoute) Method() string { return http.MethodGet }
func (r *ISORoute) Path() string   { return "/time/iso" }
func (r *ISORoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		snap := r.p.take(r.p.Config.Snapshot)
		_ = server.Encode(w, http.StatusOK, ISOResponse{ISO: snap.ISO})
	}
}

type UnixResponse struct {
	Unix int64 `json:"unix"`
}

type UnixRoute struct{ p *Platform }

func (r *UnixRoute) Method() string { return http.MethodGet }
func (r *UnixRoute) Path() string   { return "/time/unix" }
func (r *UnixRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		snap := r.p.take(r.p.Config.Snapshot)
		_ = server.Encode(w, http.StatusOK, UnixResponse{Unix: snap.Unix})
	}
}

type HumanResponse struct {
	Human string `json:"human"`
}

// HumanRoute - the human field, pattern overridable with ?format=
type HumanRoute struct{ p *Platform }

func (r *HumanRoute) Method() string { return http.MethodGet }
func (r *HumanRoute) Path() string   { return "/time/human" }
func (r *HumanRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		cfg := r.p.Config.Snapshot.WithPattern(req.URL.Query().Get("format"))
		snap := r.p.take(cfg)
		_ = server.Encode(w, http.StatusOK, HumanResponse{Human: snap.Human})
	}
}

// EnvelopeRoute - the stdio envelope protocol over HTTP
type EnvelopeRoute struct{ p *Platform }

func (r *EnvelopeRoute) Method() string { return http.MethodPost }
func (r *EnvelopeRoute) Path() string   { return "/mcp" }
func (r *EnvelopeRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := server.Decode[json.RawMessage](req)
		switch {
		case errors.Is(err, io.EOF):
			body = json.RawMessage(`{}`)
		case err != nil:
			r.p.Logger.Warn("failed to decode envelope", "err", err)
			_ = server.Encode(w, http.StatusBadRequest,
				envelope.Failure(fmt.Errorf("%w: %v", envelope.ErrInvalidRequest, err)))
			return
		}

		env, err := envelope.ParseRequest(body)
		if err != nil {
			r.p.Logger.Warn("rejected envelope", "err", err)
			_ = server.Encode(w, http.StatusBadRequest, envelope.Failure(err))
			return
		}

		snap := r.p.take(r.p.Config.Snapshot)
		metrics.ObserveSnapshot("http")
		_ = server.Encode(w, http.StatusOK, envelope.Success(env.ID, snap.Brief))
	}
}

type HealthRoute struct{}

func (r *HealthRoute) Method() string { return http.MethodGet }
func (r *HealthRoute) Path() string   { return "/healthz" }
func (r *HealthRoute) Handle() http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		_ = server.Encode(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
