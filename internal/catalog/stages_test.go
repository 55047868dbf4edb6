// internal/catalog/stages_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/gamevault/gamestore-backend/internal/legacy"
)

func TestEscapeLikeQuotesWildcards(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestLegacyNameFilterMatchesWildcardsLiterally(t *testing.T) {
	products := []legacy.Product{
		{Key: "discounted", ProductName: "Save 100% Today"},
		{Key: "thousand", ProductName: "Save 1000 Today"},
	}

	out := LegacyNameFilter("100%").Process(products)
	assert.Equal(t, []string{"discounted"}, keysOf(out))
}

func TestCountingLimitStageErrEmptyUntilCountFails(t *testing.T) {
	stage := NewCountingLimitStage(1, "10")
	assert.NoError(t, stage.Err())

	stage.err = gorm.ErrInvalidDB
	assert.ErrorIs(t, stage.Err(), gorm.ErrInvalidDB)
}
