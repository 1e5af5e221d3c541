package http

import (
	"context"
	"time"

	"github.com/coder/websocket"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/randomtoy/flipdeck/internal/domain"
)

const streamWriteTimeout = 5 * time.Second

// Stream upgrades to a websocket and pushes a viewer snapshot on connect and
// after every change until the client leaves or the viewer is unmounted.
func (h *Handler) Stream(c echo.Context) error {
	r, err := h.svc.Viewer(c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), nil)
	if err != nil {
		// Accept has already written the failure response.
		return nil
	}
	defer conn.CloseNow()

	subID := uuid.NewString()
	updates := r.Subscribe(subID)
	defer r.Unsubscribe(subID)

	ctx := conn.CloseRead(c.Request().Context())

	st, err := r.State(ctx)
	if err != nil {
		conn.Close(websocket.StatusGoingAway, "viewer closed")
		return nil
	}
	if err := writeState(ctx, conn, st); err != nil {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case st, ok := <-updates:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "viewer unmounted")
				return nil
			}
			if err := writeState(ctx, conn, st); err != nil {
				return nil
			}
		}
	}
}

func writeState(ctx context.Context, conn *websocket.Conn, st domain.ViewState) error {
	b, err := json.Marshal(toResponse(st))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, b)
}
