package models

// PropertyRecord is a single extracted listing. All fields are provider
// text: price keeps whatever formatting and currency unit the source used
// ("2.1 Cr", "95 Lakh"), and property type is free text, not a closed enum.
type PropertyRecord struct {
	BuildingName    string `json:"building_name"`
	PropertyType    string `json:"property_type"`
	LocationAddress string `json:"location_address"`
	Price           string `json:"price"`
	Description     string `json:"description"`
}

// LocationTrend is one locality price-trend data point.
type LocationTrend struct {
	Location      string  `json:"location"`
	PricePerSqft  float64 `json:"price_per_sqft"`
	PercentChange float64 `json:"percent_increase"`
	RentalYield   float64 `json:"rental_yield"`
}

// PropertyCategory and PropertyType are the closed input sets offered to
// the user. The record's PropertyType field is not constrained to these.
const (
	CategoryResidential = "Residential"
	CategoryCommercial  = "Commercial"

	TypeFlat            = "Flat"
	TypeIndividualHouse = "Individual House"
)

// SearchQuery is one user search as handed to the session agent. MaxPrice
// is in Crores and is advisory text for the provider, never enforced
// locally.
type SearchQuery struct {
	City     string  `json:"city"`
	MaxPrice float64 `json:"max_price"`
	Category string  `json:"category"`
	Type     string  `json:"type"`
}
