package main

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReadProductsSkipsHeaderAndBadRows(t *testing.T) {
	input := strings.Join([]string{
		"sku,name,category,finish,collection,price,image_url,in_stock,top_seller",
		"CAB-201,Shaker Wall Cabinet 30in,wall,white,shaker,249.00,https://cdn.example/cab-201.png,true,true",
		"CAB-202,Shaker Base Cabinet 36in,base,white,shaker,not-a-price,https://cdn.example/cab-202.png,true,false",
		",Missing SKU Cabinet,base,oak,craftsman,199.00,https://cdn.example/none.png,true,false",
		"CAB-203,Craftsman Pantry,tall,oak,craftsman,899.50,https://cdn.example/cab-203.png,no,1",
	}, "\n")

	products, skipped := readProducts(csv.NewReader(strings.NewReader(input)), discardLogger())

	require.Len(t, products, 2)
	assert.Equal(t, 2, skipped)

	first := products[0]
	assert.Equal(t, "CAB-201", first.SKU)
	assert.True(t, first.Price.Equal(decimal.RequireFromString("249.00")))
	assert.True(t, first.InStock)
	assert.True(t, first.TopSeller)

	second := products[1]
	assert.Equal(t, "CAB-203", second.SKU)
	assert.False(t, second.InStock)
	assert.True(t, second.TopSeller)
}

func TestReadProductsWithoutHeaderRow(t *testing.T) {
	input := "CAB-301,Oak Island,island,natural,modern,1499.00,https://cdn.example/cab-301.png,true,false\n"

	products, skipped := readProducts(csv.NewReader(strings.NewReader(input)), discardLogger())

	require.Len(t, products, 1)
	assert.Zero(t, skipped)
	assert.Equal(t, "CAB-301", products[0].SKU)
}

func TestReadProductsSkipsRowsWithWrongFieldCount(t *testing.T) {
	input := strings.Join([]string{
		"CAB-401,Pantry,tall,white,shaker,899.00,https://cdn.example/cab-401.png,true,false",
		"CAB-402,short row",
	}, "\n")

	products, skipped := readProducts(csv.NewReader(strings.NewReader(input)), discardLogger())

	require.Len(t, products, 1)
	assert.Equal(t, 1, skipped)
}

func TestParseBoolFallback(t *testing.T) {
	assert.True(t, parseBool("TRUE", false))
	assert.False(t, parseBool("0", true))
	assert.True(t, parseBool("maybe", true))
	assert.False(t, parseBool(" ", false))
}
