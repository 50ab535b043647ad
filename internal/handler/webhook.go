package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/hookbridge/hookbridge/internal/metrics"
	"github.com/hookbridge/hookbridge/internal/model"
	"github.com/hookbridge/hookbridge/internal/response"
	"github.com/hookbridge/hookbridge/internal/store"
)

// GitHub webhook headers the bridge reads.
const (
	HeaderEvent    = "X-GitHub-Event"
	HeaderDelivery = "X-GitHub-Delivery"
)

var errNotObject = errors.New("request body is not a JSON object")

// WebhookHandler is the receiver: it translates inbound requests into
// normalized events and store appends. Every failure resolves to an HTTP
// response; nothing propagates out of a handler.
type WebhookHandler struct {
	Store *store.Store
	Log   zerolog.Logger
}

// Receive handles POST /webhook/github.
func (h *WebhookHandler) Receive(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		h.Log.Warn().Err(err).Msg("rejected webhook: body read failed")
		metrics.RequestsRejected.WithLabelValues("read_error").Inc()
		return response.Error(c, http.StatusBadRequest, err)
	}

	// Only JSON objects are accepted. A bare null would unmarshal into the
	// payload struct as a no-op, so check before decoding.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		h.Log.Warn().Msg("rejected webhook: body is not a JSON object")
		metrics.RequestsRejected.WithLabelValues("malformed_body").Inc()
		return response.Error(c, http.StatusBadRequest, errNotObject)
	}

	var payload model.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.Log.Warn().Err(err).Msg("rejected webhook: malformed body")
		metrics.RequestsRejected.WithLabelValues("malformed_body").Inc()
		return response.Error(c, http.StatusBadRequest, err)
	}

	deliveryID := c.Request().Header.Get(HeaderDelivery)
	if deliveryID == "" {
		deliveryID = uuid.New().String()
	}
	ev := model.NewEvent(c.Request().Header.Get(HeaderEvent), deliveryID, &payload, time.Now())

	start := time.Now()
	if err := h.Store.Append(c.Request().Context(), ev); err != nil {
		h.Log.Error().Err(err).
			Str("event_type", ev.EventType).
			Str("delivery_id", ev.DeliveryID).
			Msg("append to event log failed")
		metrics.RequestsRejected.WithLabelValues("store_error").Inc()
		return response.Error(c, http.StatusBadRequest, err)
	}
	metrics.AppendDuration.Observe(time.Since(start).Seconds())
	metrics.EventsReceived.WithLabelValues(ev.EventType).Inc()

	h.Log.Info().
		Str("event_type", ev.EventType).
		Str("delivery_id", ev.DeliveryID).
		Msg("event stored")
	return response.Received(c)
}

// Health handles GET /. It never touches the store, so it answers even when
// the event log is missing or corrupt.
func (h *WebhookHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// ListEvents handles GET /events, returning the current log contents. The
// event log file stays the primary consumer interface; this is a
// convenience view of the same data.
func (h *WebhookHandler) ListEvents(c echo.Context) error {
	events, err := h.Store.Snapshot(c.Request().Context())
	if err != nil {
		h.Log.Error().Err(err).Msg("read event log failed")
		return response.Error(c, http.StatusInternalServerError, err)
	}
	if events == nil {
		events = []model.Event{}
	}
	return response.Events(c, events)
}
