package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Ack is the body returned by update and delete.
type Ack struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// WriteAck writes a 200 {success:true,message}.
func WriteAck(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, Ack{Success: true, Message: msg})
}

// WriteError maps err onto the taxonomy and writes {error[,details]}.
// Server errors are logged with their cause; the caller only sees the message.
func WriteError(w http.ResponseWriter, r *http.Request, logger *zap.SugaredLogger, err error) {
	ae := AsError(err)
	if ae.Status >= http.StatusInternalServerError {
		logger.Errorw("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"err", ae.Cause,
		)
	} else {
		logger.Debugw("request rejected", "path", r.URL.Path, "status", ae.Status, "err", ae.Message)
	}
	WriteJSON(w, ae.Status, errorBody{Error: ae.Message, Details: ae.Details})
}
