package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/estate/internal/marketplace/apperr"
	"github.com/aussiebroadwan/estate/internal/marketplace/service"
	"github.com/aussiebroadwan/estate/pkg/estatesdk"
	"github.com/aussiebroadwan/estate/pkg/httpx"
	"github.com/aussiebroadwan/estate/pkg/slogx"
)

var errBadBody = apperr.Validation("Invalid request body")

// writeError is the only place errors become HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, httpx.ErrBadJSON) {
		err = apperr.Wrap(errBadBody, err)
	}
	e := apperr.As(err)
	log := slogx.FromContext(r.Context())

	switch e.Kind {
	case apperr.KindInternal, apperr.KindUpstream:
		log.Error("request failed", "kind", e.Kind.String(), "error", err)
	default:
		log.Debug("request rejected", "kind", e.Kind.String(), "message", e.Message)
	}

	if e.Kind == apperr.KindAuth {
		code := httpx.BearerInvalidToken
		if errors.Is(err, service.ErrTokenMissing) {
			code = ""
		}
		httpx.SetBearerChallenge(w, code, e.Message)
	}
	httpx.WriteJSON(w, e.Kind.Status(), estatesdk.MessageResponse{Success: false, Message: e.Message})
}

func writeMessage(w http.ResponseWriter, code int, msg string) {
	httpx.WriteJSON(w, code, estatesdk.MessageResponse{Success: true, Message: msg})
}
