package http

import (
	"github.com/karigor/search-service/internal/domain"
)

// Response DTOs. The public API uses camelCase field names; the internal
// domain shapes stay snake_case for index and event compatibility.

type ratingDTO struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type cardDTO struct {
	ItemType     string   `json:"itemType"`
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ImageURL     string   `json:"imageUrl,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Stock        *int     `json:"stock,omitempty"`
	OwnerName    string   `json:"ownerName,omitempty"`
	City         string   `json:"city,omitempty"`
	MediaURLs    []string `json:"mediaUrls,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	ServiceTypes []string `json:"serviceTypes,omitempty"`
	IsVerified   bool     `json:"isVerified,omitempty"`
	Rating       ratingDTO `json:"rating"`
}

type resultDTO struct {
	ItemType     string    `json:"itemType"`
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Price        *float64  `json:"price,omitempty"`
	City         string    `json:"city,omitempty"`
	Availability string    `json:"availability"`
	Rating       ratingDTO `json:"rating"`
	Score        float64   `json:"score"`
	Item         *cardDTO  `json:"item,omitempty"`
}

type paginationDTO struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type appliedFiltersDTO struct {
	Applied map[string]string `json:"applied"`
}

type searchResponse struct {
	Results    []resultDTO       `json:"results"`
	Pagination paginationDTO     `json:"pagination"`
	Filters    appliedFiltersDTO `json:"filters"`
	TookMs     int64             `json:"tookMs"`
}

type suggestionDTO struct {
	Title    string  `json:"title"`
	ItemType string  `json:"itemType"`
	Category string  `json:"category,omitempty"`
	Score    float64 `json:"score"`
	Count    int     `json:"count"`
}

type suggestionsResponse struct {
	Suggestions []suggestionDTO `json:"suggestions"`
}

type valueCountDTO struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type priceRangeDTO struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

type ratingBucketDTO struct {
	Floor int `json:"floor"`
	Count int `json:"count"`
}

type filtersResponse struct {
	Categories          []valueCountDTO   `json:"categories"`
	Locations           []valueCountDTO   `json:"locations"`
	Skills              []valueCountDTO   `json:"skills"`
	Tags                []valueCountDTO   `json:"tags"`
	PriceRange          priceRangeDTO     `json:"priceRange"`
	RatingBuckets       []ratingBucketDTO `json:"ratingBuckets"`
	ItemTypes           []string          `json:"itemTypes"`
	AvailabilityOptions []string          `json:"availabilityOptions"`
	SortOptions         []string          `json:"sortOptions"`
}

type popularSearchDTO struct {
	Query        string `json:"query"`
	Count        int    `json:"count"`
	LastSearched string `json:"lastSearched"`
}

type popularResponse struct {
	PopularSearches []popularSearchDTO `json:"popularSearches"`
}

func toRatingDTO(r domain.Rating) ratingDTO {
	return ratingDTO{Average: r.Average, Count: r.Count}
}

func toCardDTO(c *domain.ResultCard) *cardDTO {
	if c == nil {
		return nil
	}
	return &cardDTO{
		ItemType:     string(c.ItemType),
		ID:           c.ID,
		Title:        c.Title,
		ImageURL:     c.ImageURL,
		Price:        c.Price,
		Stock:        c.Stock,
		OwnerName:    c.OwnerName,
		City:         c.City,
		MediaURLs:    c.MediaURLs,
		Tags:         c.Tags,
		ServiceTypes: c.ServiceTypes,
		IsVerified:   c.IsVerified,
		Rating:       toRatingDTO(c.Rating),
	}
}

func toResultDTO(hit *domain.Hit) resultDTO {
	return resultDTO{
		ItemType:     string(hit.Entry.ItemType),
		ID:           hit.Entry.ItemID,
		Title:        hit.Entry.Title,
		Description:  hit.Entry.Description,
		Category:     hit.Entry.Category,
		Price:        hit.Entry.Price,
		City:         hit.Entry.Location.City,
		Availability: string(hit.Entry.Availability),
		Rating:       toRatingDTO(hit.Entry.Rating),
		Score:        hit.Score,
		Item:         toCardDTO(hit.Item),
	}
}

func toSearchResponse(result *domain.SearchResult, applied map[string]string) searchResponse {
	results := make([]resultDTO, 0, len(result.Hits))
	for i := range result.Hits {
		results = append(results, toResultDTO(&result.Hits[i]))
	}
	if applied == nil {
		applied = map[string]string{}
	}
	return searchResponse{
		Results: results,
		Pagination: paginationDTO{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
		Filters: appliedFiltersDTO{Applied: applied},
		TookMs:  result.TookMs,
	}
}

func toValueCountDTOs(in []domain.ValueCount) []valueCountDTO {
	out := make([]valueCountDTO, 0, len(in))
	for _, vc := range in {
		out = append(out, valueCountDTO{Value: vc.Value, Count: vc.Count})
	}
	return out
}

func toFiltersResponse(f *domain.FacetSet) filtersResponse {
	buckets := make([]ratingBucketDTO, 0, len(f.RatingBuckets))
	for _, b := range f.RatingBuckets {
		buckets = append(buckets, ratingBucketDTO{Floor: b.Floor, Count: b.Count})
	}

	itemTypes := make([]string, 0, 3)
	for _, it := range domain.ValidItemTypes() {
		itemTypes = append(itemTypes, string(it))
	}
	availability := make([]string, 0, 3)
	for _, a := range domain.ValidAvailabilities() {
		availability = append(availability, string(a))
	}

	return filtersResponse{
		Categories:          toValueCountDTOs(f.Categories),
		Locations:           toValueCountDTOs(f.Locations),
		Skills:              toValueCountDTOs(f.Skills),
		Tags:                toValueCountDTOs(f.Tags),
		PriceRange:          priceRangeDTO{Min: f.Price.Min, Max: f.Price.Max, Avg: f.Price.Avg},
		RatingBuckets:       buckets,
		ItemTypes:           itemTypes,
		AvailabilityOptions: availability,
		SortOptions:         domain.ValidSortOptions(),
	}
}
