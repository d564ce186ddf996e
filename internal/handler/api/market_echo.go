package api

import (
	models "marketsim/internal/domain/models"
	"marketsim/internal/render"
	"marketsim/internal/usecase"
	xhttp "marketsim/pkg/http"
	xlogger "marketsim/pkg/logger"

	"github.com/labstack/echo/v4"
)

// MarketEchoHandler exposes the dashboard's market-data endpoints.
type MarketEchoHandler struct {
	logger *xlogger.Logger
	data   *usecase.MarketDataUseCase
	charts *usecase.ChartUseCase
}

func NewMarketEchoHandler(logger *xlogger.Logger, data *usecase.MarketDataUseCase, charts *usecase.ChartUseCase) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, data: data, charts: charts}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/symbols", h.Symbols)
	g.GET("/status", h.Status)
	g.GET("/price", h.Price)
	g.GET("/history", h.History)
	g.GET("/chart", h.Chart)
}

func (h *MarketEchoHandler) Symbols(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.data.Symbols())
}

func (h *MarketEchoHandler) Status(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.data.Status())
}

func (h *MarketEchoHandler) Price(c echo.Context) error {
	req := &models.PriceRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol": req.Symbol,
		"price":  h.data.CurrentPrice(req.Symbol),
	})
}

func (h *MarketEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	candles, err := h.data.History(c.Request().Context(), req.Symbol, req.Days)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol":  req.Symbol,
		"count":   len(candles),
		"candles": candles,
	})
}

func (h *MarketEchoHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	frame, err := h.charts.BuildFrame(c.Request().Context(), usecase.ChartFrameParams{
		Symbol: req.Symbol,
		Days:   req.Days,
		Viewport: render.Viewport{
			Width:      req.Width,
			Height:     req.Height,
			PixelRatio: req.PixelRatio,
		},
	})
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, frame)
}
