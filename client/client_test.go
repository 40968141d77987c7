package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sengkeat-dex/Tokenize/catalog"
	"github.com/sengkeat-dex/Tokenize/client"
	"github.com/sengkeat-dex/Tokenize/handlers"
	"github.com/sengkeat-dex/Tokenize/ledger"
	"github.com/sengkeat-dex/Tokenize/models"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := ledger.New()
	router := gin.New()
	handlers.Register(router.Group("/api"),
		handlers.NewComponentHandler(catalog.New([]models.NewComponent{
			{MainType: "Digital Wallet", SubType: "Custodial", Components: "HSM"},
			{MainType: "Asset Tokenization", SubType: "Real Estate", Components: "Title registry"},
			{MainType: "Asset Tokenization", SubType: "Equity", Components: "Cap table"},
		})),
		handlers.NewAssetHandler(l, nil),
		handlers.NewWalletHandler(l, nil),
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL + "/")
	ctx := context.Background()

	all, err := c.Components(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byType, err := c.ComponentsByType(ctx, "Asset Tokenization")
	require.NoError(t, err)
	assert.Len(t, byType, 2)

	bySub, err := c.ComponentsBySubType(ctx, "Asset Tokenization", "Real Estate")
	require.NoError(t, err)
	require.Len(t, bySub, 1)
	assert.Equal(t, "Title registry", bySub[0].Components)

	none, err := c.ComponentsByType(ctx, "NonExistentType")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"data":null,"message":"failed to load components"}`))
	}))
	defer srv.Close()

	_, err := client.New(srv.URL).Components(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load components")
}

func TestCountByMainType(t *testing.T) {
	srv := newServer(t)
	all, err := client.New(srv.URL).Components(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []client.TypeCount{
		{MainType: "Asset Tokenization", Count: 2},
		{MainType: "Digital Wallet", Count: 1},
	}, client.CountByMainType(all))

	assert.Empty(t, client.CountByMainType(nil))
}
