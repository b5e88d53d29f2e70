package auth

import (
	"errors"
	"net"
	"net/http"
	"strings"
)

// ExtractTokenFromRequest extracts a JWT from the Authorization header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	// Bearer token format: "Bearer {token}"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be 'Bearer {token}'")
	}

	return parts[1], nil
}

// CallerIdentity identifies a voter: the verified token subject when the
// request passed through Middleware, otherwise the remote IP. Claims from a
// bearer token that skipped verification are never used — on a public route
// anyone can mint a fresh sub per request, and the IP is the only identity
// that costs something to change.
func CallerIdentity(r *http.Request) string {
	if uid := UserID(r.Context()); uid != "" {
		return uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
