package auth

import (
	"encoding/hex"
	"net/url"
)

// ReturnPathParam is the login-page query parameter carrying the hex-encoded URI of
// the request that was refused.
const ReturnPathParam = "cf"

// LoginRedirect builds the login URL carrying the hex-encoded return path.
func LoginRedirect(loginPath, requestURI string) string {
	q := url.Values{}
	q.Set(ReturnPathParam, hex.EncodeToString([]byte(requestURI)))
	return loginPath + "?" + q.Encode()
}

// ReturnPath decodes a value written by LoginRedirect. Only local absolute paths
// are accepted.
func ReturnPath(cf string) (string, bool) {
	b, err := hex.DecodeString(cf)
	if err != nil || len(b) == 0 || b[0] != '/' {
		return "", false
	}
	if len(b) > 1 && (b[1] == '/' || b[1] == '\\') {
		return "", false
	}
	return string(b), true
}
