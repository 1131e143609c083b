package mcptool_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rizesql/timeserver/internal/assert"
	"github.com/rizesql/timeserver/internal/clock"
	"github.com/rizesql/timeserver/internal/mcptool"
	"github.com/rizesql/timeserver/internal/o11y/logging"
	"github.com/rizesql/timeserver/internal/snapshot"
)

var now = time.Date(2024, time.February, 29, 13, 45, 30, 250000000, time.FixedZone("CST", 8*60*60))

func connect(t *testing.T, cfg snapshot.Config) *mcp.ClientSession {
	t.Helper()

	srv := mcptool.New(clock.NewTestClock(now), logging.Noop(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(context.Background(), clientTransport, nil)
	assert.Err(t, err, nil)

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop after cancel")
		}
	})

	return session
}

func call(t *testing.T, session *mcp.ClientSession, args map[string]any) snapshot.Snapshot {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      mcptool.ToolName,
		Arguments: args,
	})
	assert.Err(t, err, nil)
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}

	raw, err := json.Marshal(result.StructuredContent)
	assert.Err(t, err, nil)

	var snap snapshot.Snapshot
	assert.Err(t, json.Unmarshal(raw, &snap), nil)
	return snap
}

func TestListTools(t *testing.T) {
	session := connect(t, snapshot.Config{})

	res, err := session.ListTools(context.Background(), nil)
	assert.Err(t, err, nil)
	assert.Len(t, res.Tools, 1)
	assert.Equal(t, res.Tools[0].Name, mcptool.ToolName)
}

func TestCurrentTime(t *testing.T) {
	tests := []struct {
		name      string
		cfg       snapshot.Config
		args      map[string]any
		wantHuman string
		wantDay   string
	}{
		{
			name:      "server defaults",
			cfg:       snapshot.NewConfig("zh-cn", ""),
			args:      map[string]any{},
			wantHuman: "2024年02月29日 13:45:30",
			wantDay:   "星期四",
		},
		{
			name:      "language argument",
			cfg:       snapshot.NewConfig("zh-cn", "YYYY"),
			args:      map[string]any{"language": "en"},
			wantHuman: "2024",
			wantDay:   "Thursday",
		},
		{
			name:      "format argument",
			cfg:       snapshot.NewConfig("en", ""),
			args:      map[string]any{"format": "dddd Do MMMM"},
			wantHuman: "Thursday 29th February",
			wantDay:   "Thursday",
		},
		{
			name:      "invalid format keeps default",
			cfg:       snapshot.NewConfig("en", "HH:mm"),
			args:      map[string]any{"format": strings.Repeat("Y", 300)},
			wantHuman: "13:45",
			wantDay:   "Thursday",
		},
		{
			name:      "localized format",
			cfg:       snapshot.NewConfig("zh-cn", ""),
			args:      map[string]any{"language": "en", "format": "LLLL"},
			wantHuman: "Thursday, February 29, 2024 1:45 PM",
			wantDay:   "Thursday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := connect(t, tt.cfg)

			snap := call(t, session, tt.args)

			assert.Equal(t, snap.Human, tt.wantHuman)
			assert.Equal(t, snap.DayOfWeek, tt.wantDay)
			assert.Equal(t, snap.ISO, "2024-02-29T13:45:30.250+08:00")
			assert.Equal(t, snap.Unix, now.Unix())
			assert.Equal(t, snap.IsLeapYear, true)
		})
	}
}
