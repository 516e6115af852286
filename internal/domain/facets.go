package domain

// ValueCount is one facet bucket: a distinct attribute value and how many
// active entries carry it.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PriceStats summarizes prices over entries with a positive price.
type PriceStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// RatingBucket is one fixed rating histogram bucket [Floor, Floor+1).
type RatingBucket struct {
	Floor int `json:"floor"`
	Count int `json:"count"`
}

// FacetSet holds the filterable attribute distributions for one entity-type
// scope, used to drive filter UI controls. Computed fresh per request.
type FacetSet struct {
	Categories    []ValueCount   `json:"categories"`
	Price         PriceStats     `json:"price"`
	Locations     []ValueCount   `json:"locations"`
	Skills        []ValueCount   `json:"skills"`
	Tags          []ValueCount   `json:"tags"`
	RatingBuckets []RatingBucket `json:"rating_buckets"`
}
