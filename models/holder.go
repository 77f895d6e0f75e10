package models

import (
	"github.com/shopspring/decimal"
)

// RawBalanceRecord is one entry of the paginated denom owners listing,
// exactly as the LCD returns it. The amount is an unparsed minor-unit
// decimal string.
type RawBalanceRecord struct {
	Address string `json:"address"`
	Balance struct {
		Denom  string `json:"denom"`
		Amount string `json:"amount"`
	} `json:"balance"`
}

// SupplyRecord carries the total circulating supply in major units.
// Total is nil when the supply could not be determined; percentage
// computation treats that as unknown instead of dividing by zero.
type SupplyRecord struct {
	Denom string
	Total *decimal.Decimal
}

// HolderRecord is a normalized, ranked holder entry. Address is the unique
// key; DisplayAddress is derived from it and never stored independently.
type HolderRecord struct {
	Address            string  `json:"address"`
	DisplayAddress     string  `json:"display_address"`
	BalanceMajorUnits  float64 `json:"balance"`
	PercentageOfSupply float64 `json:"percentage_of_supply"`
	Rank               int     `json:"rank"`
}

// BubblePosition places one HolderRecord on the canvas. Positions are
// recomputed wholesale on every refresh and never mutated in place.
type BubblePosition struct {
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Diameter float64 `json:"diameter"`
}

// RankedHolder pairs a holder with its canvas position, index-aligned with
// the ranked set. This pairing is the hand-off to the renderer.
type RankedHolder struct {
	Holder   HolderRecord   `json:"holder"`
	Position BubblePosition `json:"position"`
}
