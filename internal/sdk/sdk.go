// Package sdk is a Go client for the HTTP time API.
package sdk

import (
	"net/http"
	"time"
)

const (
	timeout          = 30 * time.Second
	defaultServerUrl = "http://localhost:3000"
)

type Sdk struct {
	Time *Time
	cfg  Configuration
}

func New(opts ...SdkOption) *Sdk {
	sdk := &Sdk{
		cfg: Configuration{ServerUrl: defaultServerUrl},
	}

	for _, opt := range opts {
		opt(sdk)
	}

	if sdk.cfg.Client == nil {
		sdk.cfg.Client = &http.Client{Timeout: timeout}
	}

	sdk.Time = newTime(sdk, sdk.cfg)
	return sdk
}
