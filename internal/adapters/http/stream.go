package http

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
)

const streamWriteTimeout = 3 * time.Second

// Stream upgrades to a WebSocket, sends a session snapshot, then forwards
// every session event until the client leaves or the session ends.
func (h *Handler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	view, err := h.svc.GetSession(ctx, id)
	if err != nil {
		return mapError(c, err)
	}
	events, unsubscribe, err := h.svc.Subscribe(ctx, id)
	if err != nil {
		return mapError(c, err)
	}
	defer unsubscribe()

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		// Accept has already written the response.
		return nil
	}
	defer conn.CloseNow()

	// Clients only listen; CloseRead handles their close frames.
	ctx = conn.CloseRead(ctx)

	session := toSession(view)
	if err := writeMessage(ctx, conn, StreamMessage{Type: "snapshot", Session: &session}); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				_ = conn.Close(websocket.StatusGoingAway, "session closed")
				return nil
			}
			if err := writeMessage(ctx, conn, toStreamMessage(ev)); err != nil {
				return nil
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg StreamMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, payload)
}
