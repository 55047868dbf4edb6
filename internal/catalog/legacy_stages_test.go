// internal/catalog/legacy_stages_test.go
package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gamevault/gamestore-backend/internal/legacy"
)

var stageNow = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

func legacyFixture() []legacy.Product {
	return []legacy.Product{
		{ProductID: 1, Key: "chai-quest", ProductName: "Chai Quest", UnitPrice: 18, CategoryID: 1, SupplierID: 1, ViewCount: 120, AddedAt: stageNow.AddDate(0, 0, -2)},
		{ProductID: 2, Key: "chang-rally", ProductName: "Chang Rally", UnitPrice: 19, CategoryID: 1, SupplierID: 2, ViewCount: 40, AddedAt: stageNow.AddDate(0, -2, 0)},
		{ProductID: 3, Key: "aniseed-saga", ProductName: "Aniseed Saga", UnitPrice: 10, CategoryID: 2, SupplierID: 1, ViewCount: 300, AddedAt: stageNow.AddDate(-2, 0, 0), Discontinued: true},
		{ProductID: 4, Key: "ikura-tactics", ProductName: "Ikura TACTICS", UnitPrice: 31, CategoryID: 8, SupplierID: 4, ViewCount: 7, AddedAt: stageNow.AddDate(0, 0, -30)},
	}
}

func keysOf(products []legacy.Product) []string {
	keys := make([]string, 0, len(products))
	for _, p := range products {
		keys = append(keys, p.Key)
	}
	return keys
}

func TestLegacyNameFilterCaseInsensitive(t *testing.T) {
	out := LegacyNameFilter("tactics").Process(legacyFixture())
	assert.Equal(t, []string{"ikura-tactics"}, keysOf(out))

	out = LegacyNameFilter("CHA").Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "chang-rally"}, keysOf(out))
}

func TestLegacyNameFilterEmptyFragmentPassesThrough(t *testing.T) {
	products := legacyFixture()
	assert.Len(t, LegacyNameFilter("").Process(products), len(products))
}

func TestLegacyPriceFilterWindow(t *testing.T) {
	out := LegacyPriceFilter(floatPtr(15), floatPtr(20)).Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "chang-rally"}, keysOf(out))

	out = LegacyPriceFilter(nil, floatPtr(10)).Process(legacyFixture())
	assert.Equal(t, []string{"aniseed-saga"}, keysOf(out))

	out = LegacyPriceFilter(floatPtr(100), nil).Process(legacyFixture())
	assert.Empty(t, out)
}

func TestLegacyCategoryFilter(t *testing.T) {
	out := LegacyCategoryFilter([]string{"1"}).Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "chang-rally"}, keysOf(out))

	// Unparsable ids are dropped, and a selection that parses to nothing
	// matches zero products rather than all of them.
	out = LegacyCategoryFilter([]string{"not-a-number"}).Process(legacyFixture())
	assert.Empty(t, out)

	out = LegacyCategoryFilter(nil).Process(legacyFixture())
	assert.Len(t, out, 4)
}

func TestLegacySupplierFilter(t *testing.T) {
	out := LegacySupplierFilter([]string{"1"}).Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "aniseed-saga"}, keysOf(out))
}

func TestLegacyPublishedWithinFilter(t *testing.T) {
	stage := legacyPublishedWithinFilter{bucket: PublishedLastMonth, now: func() time.Time { return stageNow }}
	out := stage.Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "ikura-tactics"}, keysOf(out))

	// An unrecognized bucket disables the filter.
	stage = legacyPublishedWithinFilter{bucket: "whenever", now: func() time.Time { return stageNow }}
	assert.Len(t, stage.Process(legacyFixture()), 4)
}

func TestLegacySortStage(t *testing.T) {
	out := LegacySortStage(SortPriceAsc).Process(legacyFixture())
	assert.Equal(t, []string{"aniseed-saga", "chai-quest", "chang-rally", "ikura-tactics"}, keysOf(out))

	out = LegacySortStage(SortMostPopular).Process(legacyFixture())
	assert.Equal(t, "aniseed-saga", out[0].Key)

	// Default ordering is newest first.
	out = LegacySortStage("").Process(legacyFixture())
	assert.Equal(t, []string{"chai-quest", "ikura-tactics", "chang-rally", "aniseed-saga"}, keysOf(out))
}

func TestLegacySortStageDoesNotMutateInput(t *testing.T) {
	products := legacyFixture()
	LegacySortStage(SortPriceAsc).Process(products)
	assert.Equal(t, "chai-quest", products[0].Key)
}

func TestLegacyCountingLimitStageRecordsTotalBeforeTruncating(t *testing.T) {
	stage := NewLegacyCountingLimitStage(1, "10")
	out := stage.Process(legacyFixture())

	assert.Equal(t, int64(4), stage.Total())
	assert.Len(t, out, 4)
}

func TestLegacyCountingLimitStageCapsAtPageTimesSize(t *testing.T) {
	products := make([]legacy.Product, 0, 25)
	for i := 0; i < 25; i++ {
		products = append(products, legacy.Product{ProductID: i})
	}

	stage := NewLegacyCountingLimitStage(2, "10")
	out := stage.Process(products)

	assert.Equal(t, int64(25), stage.Total())
	assert.Len(t, out, 20)
}

func TestLegacyCountingLimitStageAllKeepsEverything(t *testing.T) {
	stage := NewLegacyCountingLimitStage(1, PageSizeAll)
	out := stage.Process(legacyFixture())

	assert.Equal(t, int64(4), stage.Total())
	assert.Len(t, out, 4)
}

func TestLegacyPipelineFirstPageOfPriceWindow(t *testing.T) {
	prices := []float64{5, 12, 8, 45, 33, 60, 27, 14, 50, 9, 38, 75}
	products := make([]legacy.Product, 0, len(prices))
	for i, price := range prices {
		products = append(products, legacy.Product{
			ProductID:   i + 1,
			Key:         fmt.Sprintf("game-%d", i+1),
			ProductName: fmt.Sprintf("Game %d", i+1),
			UnitPrice:   price,
			AddedAt:     stageNow.AddDate(0, 0, -i),
		})
	}

	counting := NewLegacyCountingLimitStage(1, "5")
	pipeline := NewPipeline[[]legacy.Product](
		LegacyPriceFilter(floatPtr(10), floatPtr(50)),
		LegacySortStage(SortPriceAsc),
	).Then(counting)

	out := pipeline.Run(products)

	// 7 of the 12 fall in [10,50]; the first page holds the 5 cheapest.
	assert.Equal(t, int64(7), counting.Total())
	assert.Equal(t, []string{"game-2", "game-8", "game-7", "game-5", "game-11"}, keysOf(out))
}

func TestLegacyPipelineComposition(t *testing.T) {
	counting := NewLegacyCountingLimitStage(1, "10")
	pipeline := NewPipeline[[]legacy.Product](
		LegacyNameFilter("a"),
		LegacyPriceFilter(floatPtr(15), nil),
		LegacySortStage(SortPriceDesc),
	).Then(counting)

	out := pipeline.Run(legacyFixture())

	assert.Equal(t, []string{"ikura-tactics", "chang-rally", "chai-quest"}, keysOf(out))
	assert.Equal(t, int64(3), counting.Total())
}
