package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/HailXD/Tarot-Draw/internal/app"
	"github.com/HailXD/Tarot-Draw/internal/domain"
)

const maxPositionsLen = 500

type Handler struct {
	svc            *app.TarotService
	defaultDeck    string
	originPatterns []string
}

// NewHandler serves svc. originPatterns is passed to the WebSocket
// handshake; empty means same-origin only.
func NewHandler(svc *app.TarotService, defaultDeck string, originPatterns []string) *Handler {
	if defaultDeck == "" {
		defaultDeck = domain.FullDeckID
	}
	return &Handler{svc: svc, defaultDeck: defaultDeck, originPatterns: originPatterns}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/tarot", h.ReadTarot)

	e.GET("/v1/decks", h.ListDecks)
	e.GET("/v1/decks/:deck", h.GetDeck)
	e.GET("/v1/decks/:deck/shuffle", h.PreviewShuffle)

	s := e.Group("/v1/sessions")
	s.POST("", h.CreateSession)
	s.GET("/:id", h.GetSession)
	s.DELETE("/:id", h.CloseSession)
	s.PUT("/:id/seed", h.SetSeed)
	s.POST("/:id/seed/random", h.RandomizeSeed)
	s.PUT("/:id/show", h.SetShowDeck)
	s.POST("/:id/shuffle", h.Shuffle)
	s.POST("/:id/deal", h.Deal)
	s.POST("/:id/draw", h.DrawRandom)
	s.POST("/:id/reset", h.Reset)
	s.GET("/:id/spread", h.Spread)
	s.GET("/:id/stream", h.Stream)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// ReadTarot shuffles with ?seed= and deals ?positions= without a session.
func (h *Handler) ReadTarot(c echo.Context) error {
	positions := c.QueryParam("positions")
	if len(positions) > maxPositionsLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "positions must be at most 500 characters"})
	}

	resp, err := h.svc.ReadSpread(c.Request().Context(), app.ReadSpreadRequest{
		DeckID:    h.deckParam(c.QueryParam("deck")),
		Seed:      c.QueryParam("seed"),
		Positions: positions,
	})
	if errors.Is(err, domain.ErrNoValidPositions) {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: domain.PositionsHint(resp.DeckSize)})
	}
	if err != nil {
		return mapError(c, err)
	}

	reqID := requestID(c)
	return c.JSON(http.StatusOK, TarotResponse{
		Deck:   resp.DeckID,
		Seed:   resp.Seed,
		Cards:  toHand(resp.Hand),
		Spread: domain.SpreadText(resp.Hand),
		Meta:   MetaResp{RequestID: reqID},
	})
}

func (h *Handler) ListDecks(c echo.Context) error {
	return c.JSON(http.StatusOK, DeckListResponse{Decks: h.svc.DeckIDs(), Default: h.defaultDeck})
}

func (h *Handler) GetDeck(c echo.Context) error {
	deckID := c.Param("deck")
	order, err := h.svc.Deck(c.Request().Context(), deckID)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Deck: deckID, Cards: toOrder(order)})
}

func (h *Handler) PreviewShuffle(c echo.Context) error {
	deckID := c.Param("deck")
	seed := c.QueryParam("seed")
	order, err := h.svc.Preview(c.Request().Context(), deckID, seed)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Deck: deckID, Seed: seed, Cards: toOrder(order)})
}

func (h *Handler) CreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	view, err := h.svc.CreateSession(c.Request().Context(), app.CreateSessionRequest{
		DeckID: h.deckParam(req.Deck),
		Seed:   req.Seed,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(http.StatusCreated, toSession(view))
}

func (h *Handler) GetSession(c echo.Context) error {
	return h.respond(c)(h.svc.GetSession(c.Request().Context(), c.Param("id")))
}

func (h *Handler) CloseSession(c echo.Context) error {
	if err := h.svc.CloseSession(c.Request().Context(), c.Param("id")); err != nil {
		return mapError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) SetSeed(c echo.Context) error {
	var req SeedRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.SetSeed(c.Request().Context(), c.Param("id"), req.Seed))
}

func (h *Handler) RandomizeSeed(c echo.Context) error {
	return h.respond(c)(h.svc.RandomizeSeed(c.Request().Context(), c.Param("id")))
}

func (h *Handler) SetShowDeck(c echo.Context) error {
	var req ShowRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.SetShowDeck(c.Request().Context(), c.Param("id"), req.Show))
}

func (h *Handler) Shuffle(c echo.Context) error {
	var req ShuffleRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.Shuffle(c.Request().Context(), c.Param("id"), app.ShuffleRequest{RandomizeSeed: req.RandomizeSeed}))
}

func (h *Handler) Deal(c echo.Context) error {
	var req DealRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if len(req.Positions) > maxPositionsLen {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "positions must be at most 500 characters"})
	}
	return h.respond(c)(h.svc.Deal(c.Request().Context(), c.Param("id"), req.Positions))
}

// DrawRandom deals count random positions. Missing or out of range counts
// are clamped, not rejected.
func (h *Handler) DrawRandom(c echo.Context) error {
	var req DrawRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	return h.respond(c)(h.svc.DrawRandom(c.Request().Context(), c.Param("id"), req.Count))
}

func (h *Handler) Reset(c echo.Context) error {
	return h.respond(c)(h.svc.Reset(c.Request().Context(), c.Param("id")))
}

// Spread returns the dealt hand as one line of text for copying.
func (h *Handler) Spread(c echo.Context) error {
	view, err := h.svc.GetSession(c.Request().Context(), c.Param("id"))
	if err != nil {
		return mapError(c, err)
	}
	if len(view.Hand) == 0 {
		return c.NoContent(http.StatusNoContent)
	}
	return c.String(http.StatusOK, view.SpreadText)
}

// respond writes a session view. A deal that found no valid position still
// returns the session, with its hint, as 422.
func (h *Handler) respond(c echo.Context) func(app.SessionView, error) error {
	return func(view app.SessionView, err error) error {
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, toSession(view))
		case errors.Is(err, domain.ErrNoValidPositions):
			return c.JSON(http.StatusUnprocessableEntity, toSession(view))
		default:
			return mapError(c, err)
		}
	}
}

func (h *Handler) deckParam(raw string) string {
	if raw == "" {
		return h.defaultDeck
	}
	return raw
}

func mapError(c echo.Context, err error) error {
	reqID := requestID(c)

	switch {
	case errors.Is(err, domain.ErrDeckNotFound), errors.Is(err, domain.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoValidPositions):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidSteps), errors.Is(err, domain.ErrOrderMismatch):
		slog.Error("animation setup failed", "request_id", reqID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	default:
		slog.Error("internal error", "request_id", reqID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
