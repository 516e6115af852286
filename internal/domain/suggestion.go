package domain

// Suggestion is one coalesced autocomplete candidate. Matching documents are
// grouped by the (Title, ItemType, Category) triple; Score keeps the group's
// maximum relevance and Count the number of grouped documents.
type Suggestion struct {
	Title    string   `json:"title"`
	ItemType ItemType `json:"item_type"`
	Category string   `json:"category"`
	Score    float64  `json:"score"`
	Count    int      `json:"count"`
}
