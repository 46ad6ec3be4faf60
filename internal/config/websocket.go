package config

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/websocket"
)

type WebSocket struct {
	Upgrader websocket.Upgrader
}

// AllowedOrigins lists ALLOWED_ORIGINS (comma separated). Empty means any
// origin is allowed.
func AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func NewWebSocket(origins []string) *WebSocket {
	var allowed map[string]bool
	if len(origins) > 0 {
		allowed = make(map[string]bool, len(origins))
		for _, origin := range origins {
			allowed[origin] = true
		}
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowed == nil {
				return true
			}
			return allowed[r.Header.Get("Origin")]
		},
	}

	return &WebSocket{
		Upgrader: upgrader,
	}
}
