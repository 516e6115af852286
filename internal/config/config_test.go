package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8010, cfg.HTTPPort)
	assert.Equal(t, "elasticsearch", cfg.SearchEngine)
	assert.Equal(t, "http://localhost:9200", cfg.ElasticsearchURL)
	assert.Equal(t, "karigor_search", cfg.ElasticsearchIndex)
	assert.Equal(t, "search_db", cfg.PostgresDB)
	assert.Equal(t, "search-service", cfg.KafkaGroupID)
	assert.Equal(t, 2000, cfg.HydrateTimeoutMs)
	assert.Equal(t, 7, cfg.PopularWindowDays)
	assert.Equal(t, 100, cfg.ReindexPageSize)
}

func TestLoad_InvalidHTTPPort(t *testing.T) {
	t.Setenv("SEARCH_HTTP_PORT", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_InvalidSearchEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "solr")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_ENGINE")
}

func TestLoad_MemoryEngine(t *testing.T) {
	t.Setenv("SEARCH_ENGINE", "memory")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.SearchEngine)
}

func TestLoad_InvalidOTELSampleRate(t *testing.T) {
	t.Setenv("OTEL_SAMPLE_RATE", "2.0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE must be between 0.0 and 1.0")
}

func TestLoad_InvalidReindexPageSize(t *testing.T) {
	t.Setenv("SEARCH_REINDEX_PAGE_SIZE", "0")

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCH_REINDEX_PAGE_SIZE")
}

func TestLoad_CustomBrokers(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_CustomServiceURLs(t *testing.T) {
	t.Setenv("LISTING_SERVICE_URL", "http://listing.internal:8080")
	t.Setenv("CREATOR_SERVICE_URL", "http://creator.internal:8080")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "http://listing.internal:8080", cfg.ListingServiceURL)
	assert.Equal(t, "http://creator.internal:8080", cfg.CreatorServiceURL)
}
