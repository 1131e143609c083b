package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rizesql/timeserver/internal/envelope"
	"github.com/rizesql/timeserver/internal/snapshot"
)

// StatusError is returned for any response other than 200 OK.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("received non-200 status code (%d): %s", e.Code, e.Body)
}

// EnvelopeResponse is the decoded answer of the envelope endpoint.
type EnvelopeResponse struct {
	ID     string `json:"id"`
	Result *struct {
		CurrentTime snapshot.Brief `json:"current_time"`
	} `json:"result,omitempty"`
	Error *envelope.Error `json:"error,omitempty"`
}

type Time struct {
	root *Sdk
	cfg  Configuration
}

func newTime(root *Sdk, cfg Configuration) *Time {
	return &Time{
		root: root,
		cfg:  cfg,
	}
}

func (t *Time) invoke(ctx context.Context, method, path string, query url.Values, request any, response any) (err error) {
	target, err := url.JoinPath(t.cfg.ServerUrl, path)
	if err != nil {
		return fmt.Errorf("error generating URL: %w", err)
	}
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if t.cfg.Timeout != nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *t.cfg.Timeout)
		defer cancel()
	}

	var body io.Reader
	if request != nil {
		buf := new(bytes.Buffer)
		if err = json.NewEncoder(buf).Encode(request); err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rawRes, err := t.root.cfg.Client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		if closeErr := rawRes.Body.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("error closing response body: %w", closeErr)
		}
	}()

	if rawRes.StatusCode != http.StatusOK {
		bodyBytes, readErr := io.ReadAll(rawRes.Body)
		if readErr != nil {
			return fmt.Errorf("received non-200 status code (%d) and failed to read body: %w", rawRes.StatusCode, readErr)
		}
		return &StatusError{Code: rawRes.StatusCode, Body: string(bytes.TrimSpace(bodyBytes))}
	}

	if err = json.NewDecoder(rawRes.Body).Decode(response); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

// Now fetches the full snapshot from /time.
func (t *Time) Now(ctx context.Context) (*snapshot.Snapshot, error) {
	var res snapshot.Snapshot
	if err := t.invoke(ctx, http.MethodGet, "/time", nil, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (t *Time) ISO(ctx context.Context) (string, error) {
	var res struct {
		ISO string `json:"iso"`
	}
	if err := t.invoke(ctx, http.MethodGet, "/time/iso", nil, nil, &res); err != nil {
		return "", err
	}
	return res.ISO, nil
}

func (t *Time) Unix(ctx context.Context) (int64, error) {
	var res struct {
		Unix int64 `json:"unix"`
	}
	if err := t.invoke(ctx, http.MethodGet, "/time/unix", nil, nil, &res); err != nil {
		return 0, err
	}
	return res.Unix, nil
}

// Human renders the current time with format, or with the server's pattern
// when format is empty.
func (t *Time) Human(ctx context.Context, format string) (string, error) {
	var query url.Values
	if format != "" {
		query = url.Values{"format": {format}}
	}

	var res struct {
		Human string `json:"human"`
	}
	if err := t.invoke(ctx, http.MethodGet, "/time/human", query, nil, &res); err != nil {
		return "", err
	}
	return res.Human, nil
}

// Envelope posts {"id": id} to /mcp. An empty id is sent as an empty object.
func (t *Time) Envelope(ctx context.Context, id string) (*EnvelopeResponse, error) {
	req := map[string]string{}
	if id != "" {
		req["id"] = id
	}

	var res EnvelopeResponse
	if err := t.invoke(ctx, http.MethodPost, "/mcp", nil, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
