package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dtroode/gophboard-server/internal/logger"
)

// Result types reported in the result envelope.
const (
	resultRegister = "register"
	resultLogin    = "login"
	resultPost     = "post"
)

// resultResponse is the outcome of a form action.
type resultResponse struct {
	Type   string `json:"type"`
	Result bool   `json:"result"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any, logger *logger.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("failed to marshal JSON response", "error", err.Error())
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err.Error())
	}
}

func respondWithResult(w http.ResponseWriter, code int, resultType string, logger *logger.Logger) {
	respondWithJSON(w, code, resultResponse{
		Type:   resultType,
		Result: code == http.StatusOK,
	}, logger)
}

// Unauthorized answers a form action that requires a logged in user.
func Unauthorized(resultType string, logger *logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithResult(w, http.StatusUnauthorized, resultType, logger)
	})
}

// UnauthorizedPost answers a post creation attempt without a current user.
func UnauthorizedPost(logger *logger.Logger) http.Handler {
	return Unauthorized(resultPost, logger)
}
