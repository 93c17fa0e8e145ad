package middleware

import (
	"context"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/teambitewolf/news-hole/internal/auth"
	"github.com/teambitewolf/news-hole/internal/constants"
	"github.com/teambitewolf/news-hole/internal/utils"
)

// RequestID assigns every request an ID, reusing a client supplied
// X-Request-ID when present, and echoes it on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(constants.HeaderXRequestID)
			if requestID == "" || len(requestID) > constants.MaxRequestIDLength {
				requestID = uuid.New().String()
			}

			w.Header().Set(constants.HeaderXRequestID, requestID)
			ctx := context.WithValue(r.Context(), auth.RequestIDContextKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger logs method, path, status and latency for each request.
// Bodies are never logged.
func RequestLogger(proxies *TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			requestID, _ := auth.GetRequestID(r)
			utils.LogHTTPRequest(requestID, r.Method, r.URL.Path, proxies.ClientIP(r), status, time.Since(start))
		})
	}
}
