package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengkeat-dex/Tokenize/catalog"
	"github.com/sengkeat-dex/Tokenize/metrics"
	"github.com/sengkeat-dex/Tokenize/models"
)

// countingSource records how often the underlying source is consulted.
type countingSource struct {
	*catalog.Catalog
	calls int
}

func (s *countingSource) GetAllComponents(ctx context.Context) ([]models.Component, error) {
	s.calls++
	return s.Catalog.GetAllComponents(ctx)
}

func (s *countingSource) GetComponentsByType(ctx context.Context, mainType string) ([]models.Component, error) {
	s.calls++
	return s.Catalog.GetComponentsByType(ctx, mainType)
}

func newSource() *countingSource {
	return &countingSource{Catalog: catalog.New([]models.NewComponent{
		{MainType: "Digital Wallet", SubType: "Custodial", Components: "HSM"},
		{MainType: "Asset Tokenization", SubType: "Equity", Components: "Cap table"},
	})}
}

func payload(t *testing.T, components []models.Component) string {
	t.Helper()
	buf, err := json.Marshal(components)
	require.NoError(t, err)
	return string(buf)
}

func TestCacheMissLoadsAndStores(t *testing.T) {
	client, mock := redismock.NewClientMock()
	source := newSource()
	m := metrics.New()
	c := NewComponents(source, client, time.Minute, m)
	ctx := context.Background()

	want, err := source.Catalog.GetAllComponents(ctx)
	require.NoError(t, err)

	mock.ExpectGet(keyPrefix + "all").RedisNil()
	mock.ExpectSet(keyPrefix+"all", payload(t, want), time.Minute).SetVal("OK")

	got, err := c.GetAllComponents(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("miss")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheHitSkipsSource(t *testing.T) {
	client, mock := redismock.NewClientMock()
	source := newSource()
	m := metrics.New()
	c := NewComponents(source, client, time.Minute, m)

	cached := []models.Component{{ID: 9, MainType: "Digital Wallet", SubType: "Hybrid", Components: "MPC"}}
	key := keyPrefix + "type:Digital+Wallet"
	mock.ExpectGet(key).SetVal(payload(t, cached))

	got, err := c.GetComponentsByType(context.Background(), "Digital Wallet")
	require.NoError(t, err)
	assert.Equal(t, cached, got)
	assert.Zero(t, source.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("hit")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCacheErrorFallsBackWithoutStoring(t *testing.T) {
	client, mock := redismock.NewClientMock()
	source := newSource()
	m := metrics.New()
	c := NewComponents(source, client, time.Minute, m)

	mock.ExpectGet(keyPrefix + "type:NonExistentType").SetErr(errors.New("connection refused"))

	got, err := c.GetComponentsByType(context.Background(), "NonExistentType")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheRequests.WithLabelValues("error")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubTypeKeysDoNotCollide(t *testing.T) {
	client, mock := redismock.NewClientMock()
	c := NewComponents(newSource(), client, time.Minute, nil)

	// "a:b" + "c" and "a" + "b:c" must map to different keys
	mock.ExpectGet(keyPrefix + "sub:a%3Ab:c").RedisNil()
	mock.ExpectSet(keyPrefix+"sub:a%3Ab:c", "[]", time.Minute).SetVal("OK")
	mock.ExpectGet(keyPrefix + "sub:a:b%3Ac").RedisNil()
	mock.ExpectSet(keyPrefix+"sub:a:b%3Ac", "[]", time.Minute).SetVal("OK")

	_, err := c.GetComponentsBySubType(context.Background(), "a:b", "c")
	require.NoError(t, err)
	_, err = c.GetComponentsBySubType(context.Background(), "a", "b:c")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
