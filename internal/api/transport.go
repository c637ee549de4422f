package api

import (
	"net/http"

	"github.com/rs/zerolog"
)

// loggingTransport logs every outgoing request before it is sent.
type loggingTransport struct {
	next http.RoundTripper
	log  zerolog.Logger
}

func (t loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.log.Debug().
		Ctx(req.Context()).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("api request")

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		t.log.Debug().Ctx(req.Context()).Err(err).Str("path", req.URL.Path).Msg("api request failed")
	}
	return resp, err
}
