package utils

import (
	"encoding/json"
	"net/http"
)

// ResponseWithJson writes v as a JSON response with the given status code.
func ResponseWithJson(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// ResponseWithError writes an error reply shaped {"msg": message}.
func ResponseWithError(w http.ResponseWriter, code int, message string) {
	ResponseWithJson(w, code, map[string]string{"msg": message})
}
