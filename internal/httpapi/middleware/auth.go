package middleware

import (
	"net/http"
	"strings"
)

// APIKeys holds the two key classes the probe API recognizes: read keys
// may inspect the target list, trigger keys may also start probe runs.
type APIKeys struct {
	Read    []string
	Trigger []string
}

func (k APIKeys) configured() bool { return len(k.Read) > 0 || len(k.Trigger) > 0 }

func presentedKey(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(h), "bearer ") {
		return strings.TrimSpace(h[len("bearer "):])
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func matches(key string, set []string) bool {
	if key == "" {
		return false
	}
	for _, k := range set {
		if k == key {
			return true
		}
	}
	return false
}

func deny(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}

// RequireRead admits requests presenting any configured key. With no
// keys configured at all the API runs open, for local use.
func RequireRead(keys APIKeys) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !keys.configured() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := presentedKey(r)
			if matches(key, keys.Read) || matches(key, keys.Trigger) {
				next.ServeHTTP(w, r)
				return
			}
			deny(w, http.StatusUnauthorized, "missing or unknown api key")
		})
	}
}

// RequireTrigger admits only trigger keys; probe runs are the expensive
// surface. Open when no trigger keys are configured.
func RequireTrigger(keys APIKeys) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(keys.Trigger) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if matches(presentedKey(r), keys.Trigger) {
				next.ServeHTTP(w, r)
				return
			}
			deny(w, http.StatusForbidden, "trigger key required")
		})
	}
}
