// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render writes JSON responses for the HTTP API: plain payloads,
// mutation envelopes, error bodies and validation failures.
package render

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// MessageNotFound is the body message for missing or hidden resources.
const MessageNotFound = "Not Found"

// Envelope wraps the result of a mutation.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorBody is the response body for every non-validation error.
type ErrorBody struct {
	Message string `json:"message"`
}

// ValidationBody is the 422 response body.
type ValidationBody struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// Message writes a mutation envelope.
func Message(w http.ResponseWriter, status int, msg string, data any) {
	JSON(w, status, Envelope{Message: msg, Data: data})
}

// Error writes {"message": msg} with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Message: msg})
}

// NotFound writes the standard 404 body.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, MessageNotFound)
}

// ValidationErrors writes a 422 with per-field messages. The top-level
// message repeats the first field error, with a count of the others.
func ValidationErrors(w http.ResponseWriter, fields map[string][]string, order ...string) {
	JSON(w, http.StatusUnprocessableEntity, ValidationBody{
		Message: summary(fields, order),
		Errors:  fields,
	})
}

// summary builds the top-level validation message. order lists the form's
// fields so the first message is stable.
func summary(fields map[string][]string, order []string) string {
	total := 0
	first := ""
	for _, name := range order {
		if msgs := fields[name]; len(msgs) > 0 && first == "" {
			first = msgs[0]
		}
	}
	for _, msgs := range fields {
		total += len(msgs)
		if first == "" && len(msgs) > 0 {
			first = msgs[0]
		}
	}
	switch {
	case total == 0:
		return "The given data was invalid."
	case total == 1:
		return first
	case total == 2:
		return first + " (and 1 more error)"
	default:
		return first + " (and " + strconv.Itoa(total-1) + " more errors)"
	}
}

// Redirect answers with 303 See Other and a JSON body naming the target,
// so API clients and browsers both follow it.
func Redirect(w http.ResponseWriter, to string) {
	w.Header().Set("Location", to)
	JSON(w, http.StatusSeeOther, map[string]string{"redirect": to})
}
