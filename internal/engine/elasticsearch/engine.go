// Package elasticsearch provides the production Engine implementation backed
// by an Elasticsearch index.
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/planner"
)

// Engine is an Elasticsearch-backed index store.
type Engine struct {
	client    *elasticsearch.Client
	indexName string
	logger    *slog.Logger
}

// esSearchResponse decodes search responses.
type esSearchResponse struct {
	Took int `json:"took"`
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Score  *float64 `json:"_score"`
			Source document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// esBulkResponse decodes bulk responses.
type esBulkResponse struct {
	Errors bool `json:"errors"`
	Items  []struct {
		Index struct {
			ID     string `json:"_id"`
			Status int    `json:"status"`
			Error  struct {
				Type   string `json:"type"`
				Reason string `json:"reason"`
			} `json:"error"`
		} `json:"index"`
	} `json:"items"`
}

// esErrorResponse decodes error responses.
type esErrorResponse struct {
	Error struct {
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"error"`
	Status int `json:"status"`
}

// New creates an Elasticsearch engine connected to the given URL and ensures
// the index exists. An empty indexName falls back to DefaultIndexName.
func New(esURL string, indexName string, logger *slog.Logger) (*Engine, error) {
	if indexName == "" {
		indexName = DefaultIndexName
	}

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	e := &Engine{
		client:    client,
		indexName: indexName,
		logger:    logger,
	}

	if err := e.ensureIndex(); err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to ensure index: %w", err)
	}

	return e, nil
}

// Ping checks whether the Elasticsearch cluster is reachable.
func (e *Engine) Ping(ctx context.Context) error {
	res, err := e.client.Ping(e.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: unexpected status %s", res.Status())
	}
	return nil
}

// ensureIndex creates the index with the search mapping if it does not exist.
func (e *Engine) ensureIndex() error {
	res, err := e.client.Indices.Exists([]string{e.indexName})
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == 200 {
		e.logger.Info("elasticsearch index already exists", "index", e.indexName)
		return nil
	}

	res, err = e.client.Indices.Create(
		e.indexName,
		e.client.Indices.Create.WithBody(strings.NewReader(buildIndexMapping())),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return e.decodeError(res.Body, res.Status(), "create index")
	}

	e.logger.Info("elasticsearch index created", "index", e.indexName)
	return nil
}

// Upsert writes the entry under its (item_type, item_id) document id,
// replacing any previous version.
func (e *Engine) Upsert(ctx context.Context, entry *domain.IndexEntry) error {
	data, err := json.Marshal(toDocument(entry))
	if err != nil {
		return fmt.Errorf("elasticsearch upsert: marshal entry: %w", err)
	}

	res, err := e.client.Index(
		e.indexName,
		bytes.NewReader(data),
		e.client.Index.WithDocumentID(entry.DocID()),
		e.client.Index.WithRefresh("true"),
		e.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch upsert: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return e.decodeError(res.Body, res.Status(), "elasticsearch upsert")
	}

	e.logger.Debug("indexed entry", "doc_id", entry.DocID(), "title", entry.Title)
	return nil
}

// BulkUpsert writes multiple entries with the bulk NDJSON API.
func (e *Engine) BulkUpsert(ctx context.Context, entries []domain.IndexEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var buf bytes.Buffer
	for i := range entries {
		action := map[string]interface{}{
			"index": map[string]interface{}{
				"_index": e.indexName,
				"_id":    entries[i].DocID(),
			},
		}
		if err := json.NewEncoder(&buf).Encode(action); err != nil {
			return fmt.Errorf("elasticsearch bulk upsert: encode action: %w", err)
		}
		if err := json.NewEncoder(&buf).Encode(toDocument(&entries[i])); err != nil {
			return fmt.Errorf("elasticsearch bulk upsert: encode document: %w", err)
		}
	}

	res, err := e.client.Bulk(
		bytes.NewReader(buf.Bytes()),
		e.client.Bulk.WithIndex(e.indexName),
		e.client.Bulk.WithRefresh("true"),
		e.client.Bulk.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch bulk upsert: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return e.decodeError(res.Body, res.Status(), "elasticsearch bulk upsert")
	}

	var bulkResp esBulkResponse
	if err := json.NewDecoder(res.Body).Decode(&bulkResp); err != nil {
		return fmt.Errorf("elasticsearch bulk upsert: decode response: %w", err)
	}

	if bulkResp.Errors {
		var errMsgs []string
		for _, item := range bulkResp.Items {
			if item.Index.Error.Type != "" {
				errMsgs = append(errMsgs, fmt.Sprintf("id=%s: %s: %s", item.Index.ID, item.Index.Error.Type, item.Index.Error.Reason))
			}
		}
		return fmt.Errorf("elasticsearch bulk upsert: partial errors: %s", strings.Join(errMsgs, "; "))
	}

	e.logger.Info("bulk indexed entries", "count", len(entries))
	return nil
}

// Delete tombstones the entry for the given entity reference. A 404 response
// is ignored: the entry may never have been indexed.
func (e *Engine) Delete(ctx context.Context, itemType domain.ItemType, itemID string) error {
	res, err := e.client.Delete(
		e.indexName,
		domain.DocID(itemType, itemID),
		e.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return e.decodeError(res.Body, res.Status(), "elasticsearch delete")
	}

	e.logger.Debug("deleted entry", "item_type", itemType, "item_id", itemID)
	return nil
}

// Get fetches a single entry by its entity reference. A 404 response maps to
// (nil, nil).
func (e *Engine) Get(ctx context.Context, itemType domain.ItemType, itemID string) (*domain.IndexEntry, error) {
	res, err := e.client.Get(
		e.indexName,
		domain.DocID(itemType, itemID),
		e.client.Get.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch get: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, e.decodeError(res.Body, res.Status(), "elasticsearch get")
	}

	var getResp struct {
		Found  bool     `json:"found"`
		Source document `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&getResp); err != nil {
		return nil, fmt.Errorf("elasticsearch get: decode response: %w", err)
	}
	if !getResp.Found {
		return nil, nil
	}

	entry := toEntry(getResp.Source)
	return &entry, nil
}

// Search translates the plan into query DSL and executes it.
func (e *Engine) Search(ctx context.Context, plan *planner.Plan) (*domain.SearchResult, error) {
	esQuery := buildSearchBody(plan)

	data, err := json.Marshal(esQuery)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: marshal query: %w", err)
	}

	res, err := e.client.Search(
		e.client.Search.WithIndex(e.indexName),
		e.client.Search.WithBody(bytes.NewReader(data)),
		e.client.Search.WithContext(ctx),
		e.client.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, e.decodeError(res.Body, res.Status(), "elasticsearch search")
	}

	var esResp esSearchResponse
	if err := json.NewDecoder(res.Body).Decode(&esResp); err != nil {
		return nil, fmt.Errorf("elasticsearch search: decode response: %w", err)
	}

	hits := make([]domain.Hit, 0, len(esResp.Hits.Hits))
	for _, hit := range esResp.Hits.Hits {
		score := 1.0
		if hit.Score != nil {
			score = *hit.Score
		}
		hits = append(hits, domain.Hit{Entry: toEntry(hit.Source), Score: score})
	}

	total := esResp.Hits.Total.Value
	totalPages := total / plan.Limit
	if total%plan.Limit > 0 {
		totalPages++
	}

	return &domain.SearchResult{
		Hits:       hits,
		Total:      total,
		Page:       plan.Page,
		Limit:      plan.Limit,
		TotalPages: totalPages,
		TookMs:     int64(esResp.Took),
	}, nil
}

// buildSearchBody constructs the search request body from a plan.
func buildSearchBody(plan *planner.Plan) map[string]interface{} {
	var mustClause interface{}
	if strings.TrimSpace(plan.Term) != "" {
		mustClause = map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":         plan.Term,
				"fields":        []string{"title^3", "title.autocomplete^2", "tags^2", "skills^2", "description"},
				"type":          "best_fields",
				"fuzziness":     "AUTO",
				"prefix_length": 1,
			},
		}
	} else {
		mustClause = map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	boolQuery := map[string]interface{}{
		"must": []interface{}{mustClause},
	}
	if filters := translateFilters(plan.Filters); len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body := map[string]interface{}{
		"query":            map[string]interface{}{"bool": boolQuery},
		"from":             plan.Offset(),
		"size":             plan.Limit,
		"track_total_hits": true,
	}
	if sortClause := buildSort(plan.SortBy); sortClause != nil {
		body["sort"] = sortClause
	}
	return body
}

// translateFilters maps the planner's predicates onto filter clauses.
func translateFilters(filters []planner.Filter) []interface{} {
	out := make([]interface{}, 0, len(filters))
	for _, f := range filters {
		switch f := f.(type) {
		case planner.ActiveFilter:
			out = append(out, term("is_active", true))
		case planner.ApprovedFilter:
			out = append(out, term("is_approved", true))
		case planner.ItemTypeFilter:
			out = append(out, term("item_type", f.Type))
		case planner.CategoryFilter:
			out = append(out, term("category", f.Category))
		case planner.PriceRangeFilter:
			bounds := map[string]interface{}{}
			if f.Min != nil {
				bounds["gte"] = *f.Min
			}
			if f.Max != nil {
				bounds["lte"] = *f.Max
			}
			out = append(out, map[string]interface{}{
				"range": map[string]interface{}{"price": bounds},
			})
		case planner.GeoRadiusFilter:
			out = append(out, map[string]interface{}{
				"geo_distance": map[string]interface{}{
					"distance":       fmt.Sprintf("%gkm", f.RadiusKM),
					"location.point": map[string]interface{}{"lat": f.Lat, "lon": f.Lng},
				},
			})
		case planner.CityFilter:
			out = append(out, map[string]interface{}{
				"wildcard": map[string]interface{}{
					"location.city.keyword": map[string]interface{}{
						"value":            "*" + f.City + "*",
						"case_insensitive": true,
					},
				},
			})
		case planner.AnyValueFilter:
			out = append(out, map[string]interface{}{
				"terms": map[string]interface{}{string(f.Field): f.Values},
			})
		case planner.FlagFilter:
			out = append(out, term(string(f.Field), f.Want))
		case planner.MinRatingFilter:
			out = append(out, map[string]interface{}{
				"range": map[string]interface{}{"rating.average": map[string]interface{}{"gte": f.Min}},
			})
		case planner.AvailabilityFilter:
			out = append(out, term("availability", f.Availability))
		}
	}
	return out
}

func term(field string, value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"term": map[string]interface{}{field: value},
	}
}

// buildSort constructs the sort clause. Relevance ties break on recency.
func buildSort(sortBy string) []interface{} {
	switch sortBy {
	case domain.SortNewest:
		return []interface{}{map[string]interface{}{"created_at": "desc"}}
	case domain.SortPriceAsc:
		return []interface{}{map[string]interface{}{"price": "asc"}}
	case domain.SortPriceDesc:
		return []interface{}{map[string]interface{}{"price": "desc"}}
	case domain.SortRating:
		return []interface{}{map[string]interface{}{"rating.average": "desc"}}
	default:
		return []interface{}{
			map[string]interface{}{"_score": "desc"},
			map[string]interface{}{"last_updated": "desc"},
		}
	}
}

// DeleteIndex removes the entire index. Intended for tests and administrative
// operations; a 404 is treated as success.
func (e *Engine) DeleteIndex(ctx context.Context) error {
	res, err := e.client.Indices.Delete(
		[]string{e.indexName},
		e.client.Indices.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch delete index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() && res.StatusCode != 404 {
		return e.decodeError(res.Body, res.Status(), "elasticsearch delete index")
	}

	e.logger.Info("elasticsearch index deleted", "index", e.indexName)
	return nil
}

// decodeError turns an error response body into a descriptive error.
func (e *Engine) decodeError(body io.Reader, status, op string) error {
	var errResp esErrorResponse
	if decErr := json.NewDecoder(body).Decode(&errResp); decErr == nil && errResp.Error.Type != "" {
		return fmt.Errorf("%s: %s: %s", op, errResp.Error.Type, errResp.Error.Reason)
	}
	return fmt.Errorf("%s: unexpected status %s", op, status)
}
