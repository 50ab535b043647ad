package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// The shapes here are a public contract with webhook callers and monitoring;
// keep them stable.

// Ack is the success response for an accepted webhook.
type Ack struct {
	Status string `json:"status"`
}

// ErrorBody is the error response shape for every failure path.
type ErrorBody struct {
	Error string `json:"error"`
}

// HealthBody answers liveness checks.
type HealthBody struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// EventsBody carries the current event log contents.
type EventsBody struct {
	Events any `json:"events"`
}

// Received sends 200 with {"status": "received"}.
func Received(c echo.Context) error {
	return c.JSON(http.StatusOK, Ack{Status: "received"})
}

// Error sends status with {"error": "<message>"}.
func Error(c echo.Context, status int, err error) error {
	return c.JSON(status, ErrorBody{Error: err.Error()})
}

// Health sends the liveness payload.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthBody{Status: "ok", Service: "hookbridge"})
}

// Events sends 200 with the current log contents.
func Events(c echo.Context, events any) error {
	return c.JSON(http.StatusOK, EventsBody{Events: events})
}
