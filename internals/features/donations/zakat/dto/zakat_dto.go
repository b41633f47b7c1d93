package dto

import "amanah_backend/internals/features/donations/zakat/service"

type ZakatRequest struct {
	Wealth             float64 `json:"wealth" form:"wealth" validate:"gte=0"`
	GoldGrams          float64 `json:"gold_grams" form:"gold_grams" validate:"gte=0"`
	GoldPricePerGram   float64 `json:"gold_price_per_gram" form:"gold_price_per_gram" validate:"gte=0"`
	SilverGrams        float64 `json:"silver_grams" form:"silver_grams" validate:"gte=0"`
	SilverPricePerGram float64 `json:"silver_price_per_gram" form:"silver_price_per_gram" validate:"gte=0"`
	BusinessGoods      float64 `json:"business_goods" form:"business_goods" validate:"gte=0"`
	Agriculture        float64 `json:"agriculture" form:"agriculture" validate:"gte=0"`
	Currency           string  `json:"currency" form:"currency" validate:"omitempty,len=3"`
}

func (r ZakatRequest) ToInput() service.Input {
	return service.Input{
		Wealth:             r.Wealth,
		GoldGrams:          r.GoldGrams,
		GoldPricePerGram:   r.GoldPricePerGram,
		SilverGrams:        r.SilverGrams,
		SilverPricePerGram: r.SilverPricePerGram,
		BusinessGoods:      r.BusinessGoods,
		Agriculture:        r.Agriculture,
	}
}

type ZakatResponse struct {
	service.Result
	Currency       string `json:"currency,omitempty"`
	TotalFormatted string `json:"total_formatted,omitempty"`
}
