package newsdesk

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// respondJSON writes v as the JSON body with the given status code.
func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	// headers are gone at this point, nothing left to do but drop it
	_ = json.NewEncoder(w).Encode(v)
}

func respondMsg(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"msg": msg})
}

// respondError logs err and lets it answer the request if it knows how to, falling back
// on a generic internal error otherwise.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	var storageError *StorageError
	if errors.As(err, &storageError) || !isDomainError(err) {
		logger.Error().Err(err).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Msg("Request rejected")
	}

	var responder ErrorResponder
	if errors.As(err, &responder) && responder.RespondError(w, r) {
		return
	}

	respondMsg(w, http.StatusInternalServerError, msgInternalError)
}
