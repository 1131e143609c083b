package now

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rizesql/timeserver/internal/sdk"
)

// Run queries one view of the API and writes it to w as indented JSON.
func Run(ctx context.Context, cfg Config, w io.Writer) error {
	client := sdk.New(
		sdk.WithServerUrl(cfg.ServerUrl),
		sdk.WithTimeout(cfg.Timeout),
	)

	var (
		out any
		err error
	)
	switch cfg.View {
	case "iso":
		out, err = client.Time.ISO(ctx)
	case "unix":
		out, err = client.Time.Unix(ctx)
	case "human":
		out, err = client.Time.Human(ctx, cfg.Format)
	case "envelope":
		out, err = client.Time.Envelope(ctx, cfg.ID)
	default:
		out, err = client.Time.Now(ctx)
	}
	if err != nil {
		return fmt.Errorf("query %s: %w", cfg.View, err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
