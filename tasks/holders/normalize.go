package holders

import (
	"sort"

	"github.com/shopspring/decimal"

	"holdermap/models"
	"holdermap/util/addr"
)

type parsedBalance struct {
	address string
	major   decimal.Decimal
}

// Normalize turns the raw paginated dump into the canonical ranked holder
// list: scale to major units, drop unusable rows, stable-sort descending,
// truncate to topN, assign contiguous 1-based ranks and supply percentages.
// Pure and deterministic for identical inputs.
//
// Rows whose amount fails to parse are dropped silently; their count is
// returned so the caller can log it. A single malformed row must not abort
// the pipeline.
func Normalize(raw []models.RawBalanceRecord, total *decimal.Decimal, scaleFactor int64, topN int) ([]models.HolderRecord, int) {
	scale := decimal.NewFromInt(scaleFactor)

	parsed := make([]parsedBalance, 0, len(raw))
	skipped := 0

	for _, r := range raw {
		minor, err := decimal.NewFromString(r.Balance.Amount)
		if err != nil {
			skipped++
			continue
		}

		major := minor.Div(scale)
		if major.Sign() <= 0 {
			continue
		}

		parsed = append(parsed, parsedBalance{address: r.Address, major: major})
	}

	// Stable sort keeps fetch order on ties, so repeated runs on identical
	// input produce identical ordering.
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].major.Cmp(parsed[j].major) > 0
	})

	if len(parsed) > topN {
		parsed = parsed[:topN]
	}

	hundred := decimal.NewFromInt(100)
	ranked := make([]models.HolderRecord, 0, len(parsed))

	for i, p := range parsed {
		balance, _ := p.major.Float64()

		percentage := 0.0
		if total != nil && total.Sign() > 0 {
			percentage, _ = p.major.Mul(hundred).Div(*total).Float64()
		}

		ranked = append(ranked, models.HolderRecord{
			Address:            p.address,
			DisplayAddress:     addr.Shorten(p.address),
			BalanceMajorUnits:  balance,
			PercentageOfSupply: percentage,
			Rank:               i + 1,
		})
	}

	return ranked, skipped
}
