package elasticsearch

// DefaultIndexName is the default Elasticsearch index for search entries.
const DefaultIndexName = "karigor_search"

// buildIndexMapping returns the JSON mapping for the unified search index:
// keyword identity fields, analyzed text for title/description, an edge-ngram
// subfield for autocomplete, keyword multi-values for tags/skills, a geo_point
// for radius queries, and the compound filter fields the planner emits.
func buildIndexMapping() string {
	return `{
  "settings": {
    "number_of_shards": 1,
    "number_of_replicas": 0,
    "analysis": {
      "analyzer": {
        "autocomplete_analyzer": {
          "type": "custom",
          "tokenizer": "autocomplete_tokenizer",
          "filter": ["lowercase"]
        },
        "autocomplete_search": {
          "type": "custom",
          "tokenizer": "standard",
          "filter": ["lowercase"]
        }
      },
      "tokenizer": {
        "autocomplete_tokenizer": {
          "type": "edge_ngram",
          "min_gram": 2,
          "max_gram": 20,
          "token_chars": ["letter", "digit"]
        }
      }
    }
  },
  "mappings": {
    "properties": {
      "item_type":   { "type": "keyword" },
      "item_id":     { "type": "keyword" },
      "title":       { "type": "text", "fields": { "keyword": { "type": "keyword", "ignore_above": 256 }, "autocomplete": { "type": "text", "analyzer": "autocomplete_analyzer", "search_analyzer": "autocomplete_search" } } },
      "description": { "type": "text" },
      "category":    { "type": "keyword" },
      "tags":        { "type": "keyword" },
      "skills":      { "type": "keyword" },
      "price":       { "type": "double" },
      "location": {
        "properties": {
          "city":     { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
          "district": { "type": "keyword" },
          "point":    { "type": "geo_point" },
          "has_geo":  { "type": "boolean" }
        }
      },
      "owner_id": { "type": "keyword" },
      "rating": {
        "properties": {
          "average": { "type": "float" },
          "count":   { "type": "integer" }
        }
      },
      "availability":          { "type": "keyword" },
      "accepts_custom_orders": { "type": "boolean" },
      "accepts_bookings":      { "type": "boolean" },
      "is_active":             { "type": "boolean" },
      "is_approved":           { "type": "boolean" },
      "created_at":            { "type": "date" },
      "last_updated":          { "type": "date" }
    }
  }
}`
}
