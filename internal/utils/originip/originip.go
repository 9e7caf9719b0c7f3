package originip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest extracts the origin address for audit records: the first
// comma-separated X-Forwarded-For value when present, otherwise the
// direct connection address. Returns nil when neither yields anything.
func FromRequest(r *http.Request) *string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if first != "" {
			return &first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if host == "" {
		return nil
	}

	return &host
}
