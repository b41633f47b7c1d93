// Package service holds the Zakat calculator. It is a pure function of its
// inputs; nothing is persisted.
package service

import "math"

const (
	Rate            = 0.025
	AgricultureRate = 0.05

	NisabGoldGrams   = 85.0
	NisabSilverGrams = 595.0
)

type Input struct {
	Wealth             float64
	GoldGrams          float64
	GoldPricePerGram   float64
	SilverGrams        float64
	SilverPricePerGram float64
	BusinessGoods      float64
	Agriculture        float64
}

type Breakdown struct {
	Wealth      float64 `json:"wealth"`
	Gold        float64 `json:"gold"`
	Silver      float64 `json:"silver"`
	Business    float64 `json:"business"`
	Agriculture float64 `json:"agriculture"`
}

type Result struct {
	Breakdown Breakdown `json:"breakdown"`
	Total     float64   `json:"total"`
	// ZakatableAssets is the base the 2.5% categories are charged on.
	ZakatableAssets float64 `json:"zakatable_assets"`
	NisabValue      float64 `json:"nisab_value"`
	NisabBasis      string  `json:"nisab_basis,omitempty"`
	MeetsNisab      bool    `json:"meets_nisab"`
}

// Calculate applies the fixed rates per category. The nisab threshold is
// reported only; it never changes the total.
func Calculate(in Input) Result {
	goldValue := in.GoldGrams * in.GoldPricePerGram
	silverValue := in.SilverGrams * in.SilverPricePerGram

	b := Breakdown{
		Wealth:      round2(in.Wealth * Rate),
		Gold:        round2(goldValue * Rate),
		Silver:      round2(silverValue * Rate),
		Business:    round2(in.BusinessGoods * Rate),
		Agriculture: round2(in.Agriculture * AgricultureRate),
	}
	out := Result{
		Breakdown:       b,
		Total:           round2(b.Wealth + b.Gold + b.Silver + b.Business + b.Agriculture),
		ZakatableAssets: round2(in.Wealth + goldValue + silverValue + in.BusinessGoods),
	}

	switch {
	case in.GoldPricePerGram > 0:
		out.NisabValue = round2(NisabGoldGrams * in.GoldPricePerGram)
		out.NisabBasis = "gold"
	case in.SilverPricePerGram > 0:
		out.NisabValue = round2(NisabSilverGrams * in.SilverPricePerGram)
		out.NisabBasis = "silver"
	}
	out.MeetsNisab = out.NisabValue > 0 && out.ZakatableAssets >= out.NisabValue
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
