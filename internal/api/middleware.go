package api

import (
	"net/http"
)

// rateLimit applies the configured limiter, if any
func (s *Server) rateLimit(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return s.limiter.Middleware(http.HandlerFunc(handleRateLimited))(next)
}

func handleRateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
}

// requestMetadata collects request details stored alongside leads
func requestMetadata(r *http.Request) map[string]string {
	metadata := map[string]string{
		"remote_addr": r.RemoteAddr,
	}
	if ua := r.UserAgent(); ua != "" {
		metadata["user_agent"] = ua
	}
	if ref := r.Referer(); ref != "" {
		metadata["referer"] = ref
	}
	return metadata
}
