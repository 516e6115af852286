package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/karigor/search-service/internal/domain"
	"github.com/karigor/search-service/internal/service"
	"github.com/karigor/search-service/pkg/httputil"
	"github.com/karigor/search-service/pkg/validator"
)

// SearchHandler handles the public search endpoints.
type SearchHandler struct {
	service *service.SearchService
	logger  *slog.Logger

	// reindexing collapses concurrent rebuild requests to a single pass.
	reindexing atomic.Bool
}

// NewSearchHandler creates a new search HTTP handler.
func NewSearchHandler(svc *service.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		service: svc,
		logger:  logger,
	}
}

// searchParams carries the range-checked query parameters.
type searchParams struct {
	MinRating float64 `validate:"gte=0,lte=5"`
	Radius    float64 `validate:"gte=0"`
}

// Search handles GET /api/v1/search.
//
// Unknown or malformed optional filters are ignored rather than rejected, so
// an old client with a stale filter set still gets results. Pagination and
// sort are the exception: explicitly invalid values are a client error.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sortBy := q.Get("sortBy")
	if sortBy != "" && !domain.IsValidSort(sortBy) {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: "sortBy must be one of: " + strings.Join(domain.ValidSortOptions(), ", "),
			},
		})
		return
	}

	query := &domain.SearchQuery{
		Term:   strings.TrimSpace(q.Get("q")),
		SortBy: sortBy,
	}

	query.ItemType = itemTypeParam(q)
	if v := q.Get("category"); v != "" {
		query.Category = strings.ToLower(strings.TrimSpace(v))
	}
	if f, ok := parseFloat(q.Get("minPrice")); ok && f >= 0 {
		query.MinPrice = &f
	}
	if f, ok := parseFloat(q.Get("maxPrice")); ok && f >= 0 {
		query.MaxPrice = &f
	}

	params := searchParams{}
	lat, latOK := parseFloat(q.Get("lat"))
	lng, lngOK := parseFloat(q.Get("lng"))
	radius, radiusOK := parseFloat(q.Get("radius"))
	if latOK && lngOK && radiusOK {
		params.Radius = radius
		query.Geo = &domain.GeoCircle{Lat: lat, Lng: lng, RadiusKM: radius}
	}
	if v := q.Get("location"); v != "" {
		query.LocationText = strings.TrimSpace(v)
	}
	if vs := splitList(q.Get("skills")); len(vs) > 0 {
		query.Skills = vs
	}
	if vs := splitList(q.Get("tags")); len(vs) > 0 {
		query.Tags = vs
	}
	if b, ok := parseBool(q.Get("acceptsCustomOrders")); ok {
		query.AcceptsCustomOrders = &b
	}
	if b, ok := parseBool(q.Get("acceptsBookings")); ok {
		query.AcceptsBookings = &b
	}
	if f, ok := parseFloat(q.Get("minRating")); ok {
		params.MinRating = f
		query.MinRating = &f
	}
	if v := q.Get("availability"); v != "" {
		for _, a := range domain.ValidAvailabilities() {
			if string(a) == v {
				av := a
				query.Availability = &av
				break
			}
		}
	}

	if err := validator.Validate(params); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	// Non-numeric page/limit values fall back to defaults; numeric but
	// out-of-range values are rejected downstream.
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		query.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		query.Limit = v
	}

	result, err := h.service.Search(r.Context(), query)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: toSearchResponse(result, appliedFilters(query)),
	})
}

// Suggestions handles GET /api/v1/search/suggestions.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	scope := itemTypeParam(q)
	limit := 10
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 25 {
		limit = v
	}

	suggestions, err := h.service.Suggest(r.Context(), q.Get("q"), scope, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	dtos := make([]suggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		dtos = append(dtos, suggestionDTO{
			Title:    s.Title,
			ItemType: string(s.ItemType),
			Category: s.Category,
			Score:    s.Score,
			Count:    s.Count,
		})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: suggestionsResponse{Suggestions: dtos},
	})
}

// Filters handles GET /api/v1/search/filters.
func (h *SearchHandler) Filters(w http.ResponseWriter, r *http.Request) {
	scope := itemTypeParam(r.URL.Query())

	facets, err := h.service.Facets(r.Context(), scope)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: toFiltersResponse(facets),
	})
}

// Popular handles GET /api/v1/search/popular.
func (h *SearchHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 50 {
		limit = v
	}

	popular, err := h.service.Popular(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	dtos := make([]popularSearchDTO, 0, len(popular))
	for _, pq := range popular {
		dtos = append(dtos, popularSearchDTO{
			Query:        pq.Query,
			Count:        pq.Count,
			LastSearched: pq.LastSearched.UTC().Format(time.RFC3339),
		})
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: popularResponse{PopularSearches: dtos},
	})
}

// Reindex handles POST /api/v1/search/reindex. The rebuild runs in the
// background; the request is acknowledged immediately. Only one rebuild runs
// at a time: a request arriving while one is in flight gets a 409.
func (h *SearchHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	if !h.reindexing.CompareAndSwap(false, true) {
		httputil.WriteJSON(w, http.StatusConflict, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "REINDEX_IN_PROGRESS",
				Message: "a reindex is already running",
			},
		})
		return
	}

	go func() {
		defer h.reindexing.Store(false)

		ctx := context.Background()
		result, err := h.service.Reindex(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "background reindex failed",
				slog.String("error", err.Error()),
			)
			return
		}
		h.logger.InfoContext(ctx, "background reindex finished",
			slog.Int("entries", result.Total()),
		)
	}()

	httputil.WriteJSON(w, http.StatusAccepted, httputil.Response{
		Data: map[string]string{"status": "reindex started"},
	})
}

// itemTypeParam reads the entity-kind parameter. itemType is the documented
// name; type is kept as an alias for older clients. Unknown kinds are
// ignored like any other malformed optional filter.
func itemTypeParam(q url.Values) domain.ItemType {
	v := q.Get("itemType")
	if v == "" {
		v = q.Get("type")
	}
	if v != "" && domain.IsValidItemType(v) {
		return domain.ItemType(v)
	}
	return ""
}

// appliedFilters echoes the recognized filters back to the client.
func appliedFilters(q *domain.SearchQuery) map[string]string {
	applied := make(map[string]string)
	if q.ItemType != "" {
		applied["itemType"] = string(q.ItemType)
	}
	if q.Category != "" {
		applied["category"] = q.Category
	}
	if q.MinPrice != nil {
		applied["minPrice"] = formatFloat(*q.MinPrice)
	}
	if q.MaxPrice != nil {
		applied["maxPrice"] = formatFloat(*q.MaxPrice)
	}
	if q.Geo != nil {
		applied["radius"] = formatFloat(q.Geo.RadiusKM)
	}
	if q.LocationText != "" {
		applied["location"] = q.LocationText
	}
	if len(q.Skills) > 0 {
		applied["skills"] = strings.Join(q.Skills, ",")
	}
	if len(q.Tags) > 0 {
		applied["tags"] = strings.Join(q.Tags, ",")
	}
	if q.AcceptsCustomOrders != nil {
		applied["acceptsCustomOrders"] = strconv.FormatBool(*q.AcceptsCustomOrders)
	}
	if q.AcceptsBookings != nil {
		applied["acceptsBookings"] = strconv.FormatBool(*q.AcceptsBookings)
	}
	if q.MinRating != nil {
		applied["minRating"] = formatFloat(*q.MinRating)
	}
	if q.Availability != nil {
		applied["availability"] = string(*q.Availability)
	}
	return applied
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBool(s string) (bool, bool) {
	if s == "" {
		return false, false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, false
	}
	return b, true
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
