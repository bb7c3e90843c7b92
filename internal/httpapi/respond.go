package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"trumpet/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

type errorBody struct {
	Detail string `json:"detail"`
}

// writeError translates a taxonomy error to its fixed status code. Internal
// errors are logged and masked.
func writeError(w http.ResponseWriter, err error) {
	status := common.HTTPStatus(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		detail = "internal server error"
	}
	if errors.Is(err, common.ErrUnauthorized) {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	writeJSON(w, status, errorBody{Detail: detail})
}

// pagination reads skip/limit query params, clamping limit to 1..100.
func pagination(r *http.Request, defaultLimit int) (skip, limit int) {
	skip = 0
	limit = defaultLimit
	if v := r.URL.Query().Get("skip"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			skip = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}

func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return common.Invalidf("malformed request body")
	}
	return nil
}
