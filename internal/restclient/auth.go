package restclient

import "net/http"

// Authenticator applies credentials to outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

type NoAuth struct{}

func (NoAuth) Apply(*http.Request) {}

// HeaderAuth sets a static header, e.g. X-TrackerToken.
type HeaderAuth struct {
	Header string
	Value  string
}

func (a HeaderAuth) Apply(req *http.Request) {
	if a.Value == "" {
		return
	}
	req.Header.Set(a.Header, a.Value)
}

type BearerAuth struct {
	Token string
}

func (a BearerAuth) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
}
