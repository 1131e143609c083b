package sdk

import (
	"net/http"
	"time"
)

type Configuration struct {
	Client    *http.Client
	ServerUrl string
	Timeout   *time.Duration
}

type SdkOption func(*Sdk)

func WithClient(client *http.Client) SdkOption {
	return func(sdk *Sdk) {
		sdk.cfg.Client = client
	}
}

// WithServerUrl points the client at a running API, e.g. http://localhost:3000.
func WithServerUrl(serverUrl string) SdkOption {
	return func(sdk *Sdk) {
		sdk.cfg.ServerUrl = serverUrl
	}
}

// WithTimeout bounds each call, on top of any deadline carried by its context.
func WithTimeout(timeout time.Duration) SdkOption {
	return func(sdk *Sdk) {
		sdk.cfg.Timeout = &timeout
	}
}
