package models

// Requests for the dashboard HTTP endpoints. Defined in domain for
// consistency and reuse.

type HistoryRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Days   int    `query:"days" json:"days" default:"100" validate:"gte=1,lte=1000"`
}

type PriceRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
}

type ChartRequest struct {
	Symbol     string  `query:"symbol" json:"symbol" validate:"required"`
	Days       int     `query:"days" json:"days" default:"100" validate:"gte=1,lte=1000"`
	Width      float64 `query:"width" json:"width" default:"800" validate:"gt=0,lte=8192"`
	Height     float64 `query:"height" json:"height" default:"400" validate:"gt=0,lte=8192"`
	PixelRatio float64 `query:"pixelRatio" json:"pixelRatio" default:"1" validate:"gte=1,lte=4"`
}
