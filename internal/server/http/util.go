package http

import (
	"encoding/json"
	"net/http"
)

func encodeJSONResponse[T any](w http.ResponseWriter, code int, data T) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// getClientIP reads the platform forwarded header first, then Client-Ip.
// An unknown address is sent to Meta as an empty string.
func getClientIP(req *http.Request, forwardedHeader string) string {
	if forwardedHeader != "" {
		if ip := req.Header.Get(forwardedHeader); ip != "" {
			return ip
		}
	}
	return req.Header.Get("Client-Ip")
}
