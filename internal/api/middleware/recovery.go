package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/playerhub-go/internal/api/apierr"
	"github.com/mcoot/playerhub-go/internal/middleware"
)

// Recovery creates panic recovery middleware that answers recovered
// panics with the JSON internal error envelope
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, writeInternalError)
}

func writeInternalError(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
