package client

import (
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/google/uuid"
)

// authTransport decorates outgoing requests with the bearer token of the
// current session and a request id.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func newAuthTransport(base http.RoundTripper, tokens TokenSource) *authTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &authTransport{base: base, tokens: tokens}
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())

	if token := tokenOf(t.tokens); token != "" && r.Header.Get(common.AuthorizationHeaderName) == "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	if r.Header.Get(common.RequestIDHeaderName) == "" {
		r.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	}

	return t.base.RoundTrip(r)
}

func tokenOf(ts TokenSource) string {
	if ts == nil {
		return ""
	}
	return ts.AccessToken()
}
