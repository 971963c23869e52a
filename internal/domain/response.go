package domain

// PricedResponse is the result of pricing one person's policies.
// DiscountedTotalCost is nil when no discount applies and is then left out
// of the JSON body entirely.
type PricedResponse struct {
	PersonalNumber      string   `json:"personalNumber"`
	Insurances          []Policy `json:"insurances"`
	TotalCost           int      `json:"totalCost"`
	DiscountedTotalCost *int     `json:"discountedTotalCost,omitempty"`
}

func (r *PricedResponse) Discounted() bool {
	return r.DiscountedTotalCost != nil
}
