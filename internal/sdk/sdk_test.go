package sdk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rizesql/timeserver/internal/assert"
	"github.com/rizesql/timeserver/internal/envelope"
	"github.com/rizesql/timeserver/internal/sdk"
	"github.com/rizesql/timeserver/internal/testkit"
)

func newClient(t *testing.T) *sdk.Sdk {
	t.Helper()

	h := testkit.NewHarness(t)
	ts := httptest.NewServer(h.NewAPIServer().Handler())
	t.Cleanup(ts.Close)

	return sdk.New(
		sdk.WithServerUrl(ts.URL),
		sdk.WithClient(ts.Client()),
		sdk.WithTimeout(5*time.Second),
	)
}

func TestTime_Endpoints(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	snap, err := client.Time.Now(ctx)
	assert.Err(t, err, nil)
	assert.Equal(t, snap.Unix, testkit.FixedNow.Unix())
	assert.Equal(t, snap.Human, "2024年02月29日 13:45:30")

	iso, err := client.Time.ISO(ctx)
	assert.Err(t, err, nil)
	assert.Equal(t, iso, "2024-02-29T13:45:30.250+08:00")

	unix, err := client.Time.Unix(ctx)
	assert.Err(t, err, nil)
	assert.Equal(t, unix, testkit.FixedNow.Unix())

	human, err := client.Time.Human(ctx, "YYYY-MM-DD")
	assert.Err(t, err, nil)
	assert.Equal(t, human, "2024-02-29")

	human, err = client.Time.Human(ctx, "")
	assert.Err(t, err, nil)
	assert.Equal(t, human, "2024年02月29日 13:45:30")
}

func TestTime_Envelope(t *testing.T) {
	client := newClient(t)

	res, err := client.Time.Envelope(context.Background(), "abc")
	assert.Err(t, err, nil)
	assert.Equal(t, res.ID, "abc")
	assert.Equal(t, res.Result.CurrentTime.Unix, testkit.FixedNow.Unix())

	res, err = client.Time.Envelope(context.Background(), "")
	assert.Err(t, err, nil)
	assert.Equal(t, res.ID, envelope.DefaultID)
}

func TestTime_StatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := sdk.New(sdk.WithServerUrl(ts.URL))

	_, err := client.Time.Unix(context.Background())

	var se *sdk.StatusError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, se.Code, http.StatusServiceUnavailable)
	assert.Equal(t, se.Body, "unavailable")
}

func TestTime_ContextCancelled(t *testing.T) {
	client := newClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Time.ISO(ctx)
	assert.Err(t, err, context.Canceled)
}
