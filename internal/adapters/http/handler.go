package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/randomtoy/flipdeck/internal/app"
	"github.com/randomtoy/flipdeck/internal/domain"
)

type Handler struct {
	svc         *app.ViewerService
	defaultDeck string
	limiter     *rate.Limiter
}

func NewHandler(svc *app.ViewerService, defaultDeck string, limiter *rate.Limiter) *Handler {
	return &Handler{svc: svc, defaultDeck: defaultDeck, limiter: limiter}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/decks/:deck", h.GetDeck)

	g := e.Group("/v1/viewers", RateLimitMiddleware(h.limiter))
	g.POST("", h.Mount)
	g.GET("/:id", h.GetViewer)
	g.DELETE("/:id", h.Unmount)
	g.POST("/:id/next", h.command((*app.Runner).Next))
	g.POST("/:id/prev", h.command((*app.Runner).Prev))
	g.POST("/:id/flip", h.command((*app.Runner).Flip))
	g.POST("/:id/shuffle", h.command((*app.Runner).Shuffle))
	g.POST("/:id/autoplay/toggle", h.command((*app.Runner).ToggleAutoplay))
	g.PUT("/:id/autoplay", h.SetAutoplay)
	g.GET("/:id/stream", h.Stream)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetDeck(c echo.Context) error {
	deck, err := h.svc.Deck(c.Request().Context(), c.Param("deck"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, DeckResponse{ID: deck.ID, Name: deck.Name, Size: len(deck.Cards)})
}

func (h *Handler) Mount(c echo.Context) error {
	var req MountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Deck == "" {
		req.Deck = h.defaultDeck
	}

	ctx := c.Request().Context()
	r, err := h.svc.Mount(ctx, req.Deck)
	if err != nil {
		return mapError(c, err)
	}
	st, err := r.State(ctx)
	if err != nil {
		if uerr := h.svc.Unmount(ctx, r.ID()); uerr != nil {
			slog.Warn("unmount after failed mount", "viewer_id", r.ID(), "error", uerr)
		}
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toResponse(st))
}

func (h *Handler) GetViewer(c echo.Context) error {
	return h.command((*app.Runner).State)(c)
}

func (h *Handler) Unmount(c echo.Context) error {
	if err := h.svc.Unmount(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetAutoplay(c echo.Context) error {
	var req AutoplayRequest
	if err := c.Bind(&req); err != nil || req.Enabled == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "body must be {\"enabled\": true|false}"})
	}
	enabled := *req.Enabled
	return h.command(func(r *app.Runner, ctx context.Context) (domain.ViewState, error) {
		return r.SetAutoplay(ctx, enabled)
	})(c)
}

// command resolves the viewer in the :id path parameter and runs op on it.
func (h *Handler) command(op func(*app.Runner, context.Context) (domain.ViewState, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		r, err := h.svc.Viewer(c.Param("id"))
		if err != nil {
			return mapError(c, err)
		}
		st, err := op(r, c.Request().Context())
		if err != nil {
			return mapError(c, err)
		}
		return c.JSON(http.StatusOK, toResponse(st))
	}
}

func toResponse(st domain.ViewState) ViewerResponse {
	resp := ViewerResponse{
		ID:          st.ViewerID,
		Seq:         st.Seq,
		Deck:        DeckRef{ID: st.DeckID, Name: st.DeckName},
		Orientation: st.Flip.Orientation,
		Animated:    st.Flip.Animated,
		Faces:       []FaceResponse{},
		Progress: ProgressResponse{
			Position: st.Progress.Position,
			Total:    st.Progress.Total,
			Fraction: st.Progress.Fraction(),
			Label:    st.Progress.Label(),
		},
		Autoplay: AutoplayResponse{
			Enabled:   st.Autoplay.Enabled,
			Countdown: st.Autoplay.Countdown,
			Phase:     st.Autoplay.Phase,
		},
		Shuffled: st.Shuffled,
	}
	if st.Card == nil {
		return resp
	}

	resp.Card = &CardResponse{ID: st.Card.ID, Front: st.Card.Front, Back: st.Card.Back}
	var duration int64
	if st.Flip.Animated {
		duration = domain.FlipDuration.Milliseconds()
	}
	for _, side := range []domain.Orientation{domain.Front, domain.Back} {
		resp.Faces = append(resp.Faces, FaceResponse{
			Side:       side,
			Text:       st.Card.Face(side),
			RotateX:    st.Flip.Rotation(side),
			DurationMS: duration,
		})
	}
	return resp
}

func mapError(c echo.Context, err error) error {
	requestID, _ := c.Get("request_id").(string)

	switch {
	case errors.Is(err, domain.ErrDeckNotFound), errors.Is(err, domain.ErrViewerNotFound),
		errors.Is(err, domain.ErrViewerClosed):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidDeck), errors.Is(err, domain.ErrDuplicateCardID):
		slog.Warn("invalid deck", "request_id", requestID, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("internal error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
