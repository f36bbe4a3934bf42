package httphandler

import (
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/storefront/internal/core/domain"
)

const (
	headerCustomerID    = "X-Customer-ID"
	headerAuthorization = "Authorization"
)

// AllowJSON rejects request bodies that are not JSON.
func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mt != "application/json" {
			writeError(w, http.StatusUnsupportedMediaType, "invalid media type")
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

// LogRequests writes one structured record per served request.
func LogRequests(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		slog.Info("request served",
			"requestID", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
		)
	}
	return http.HandlerFunc(hf)
}

// shopperFromRequest reads the client identity. The token may be sent
// either bare or with the Bearer scheme.
func shopperFromRequest(r *http.Request) domain.Shopper {
	token := strings.TrimSpace(r.Header.Get(headerAuthorization))
	if scheme, rest, ok := strings.Cut(token, " "); ok &&
		strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(rest)
	}

	return domain.Shopper{
		CustomerID: strings.TrimSpace(r.Header.Get(headerCustomerID)),
		Token:      token,
	}
}
