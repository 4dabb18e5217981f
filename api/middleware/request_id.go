package middleware

import (
	"net/http"
	"strconv"

	"github.com/simplishare/simplishare-server/pkg/logger"
	"github.com/simplishare/simplishare-server/pkg/requestid"
)

const requestIDHeader = "X-Request-Id"

// RequestID mints a six-digit request identifier, binds it to the context,
// and echoes it in the response header. The same id appears in every log
// line and in the response envelope.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := requestid.Mint()

			w.Header().Set(requestIDHeader, strconv.Itoa(reqID))

			ctx := requestid.With(r.Context(), reqID)
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
