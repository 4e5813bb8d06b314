package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes the given data to JSON and writes it to the HTTP
// response.
//
// It sets the "Content-Type" header to "application/json" and writes the
// provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error and
// returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) error {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error serializing response", http.StatusInternalServerError)
		return fmt.Errorf("error marshaling JSON response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("error writing JSON response: %w", err)
	}

	return nil
}

// WriteXML writes an already-rendered XML document to the HTTP response
// with the given status code. The payload serializer owns the rendering;
// this helper only sets headers and streams the bytes.
func WriteXML(w http.ResponseWriter, body []byte, statusCode int) error {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("error writing XML response: %w", err)
	}

	return nil
}
