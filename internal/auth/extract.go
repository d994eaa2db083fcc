package auth

import (
	"net/http"
	"strings"
)

// RequestCredentials is a framework-independent view of the places a request
// can carry a bearer token. The middleware builds one from the gin context;
// tests build them directly.
type RequestCredentials struct {
	BodyToken  string
	QueryToken string
	Header     http.Header
}

// extractor returns a token candidate or "".
type extractor func(RequestCredentials) string

// Extraction order is a contract: body field, then query parameter, then the
// x-access-token header, then a standard bearer Authorization header.
var extractors = []extractor{
	func(rc RequestCredentials) string { return rc.BodyToken },
	func(rc RequestCredentials) string { return rc.QueryToken },
	func(rc RequestCredentials) string { return rc.Header.Get("x-access-token") },
	func(rc RequestCredentials) string {
		auth := rc.Header.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
		return ""
	},
}

// ExtractToken returns the first non-empty token candidate in precedence
// order, or "" when the request carries no credential.
func ExtractToken(rc RequestCredentials) string {
	for _, ex := range extractors {
		if tok := ex(rc); tok != "" {
			return tok
		}
	}
	return ""
}
