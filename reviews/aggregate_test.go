package reviews

import (
	"testing"

	"pasarin/models"

	"github.com/stretchr/testify/assert"
)

func TestProductAggregate(t *testing.T) {
	rating, count := ProductAggregate([]models.Review{
		{Rating: 5, Status: models.ReviewPublished},
		{Rating: 3, Status: models.ReviewPublished},
		{Rating: 1, Status: models.ReviewHidden}, // excluded
	})
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 2, count)
}

func TestProductAggregateEmpty(t *testing.T) {
	rating, count := ProductAggregate(nil)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, 0, count)
}

func TestStoreAggregate(t *testing.T) {
	average, total := StoreAggregate([]models.Product{
		{Rating: 4.0, ReviewCount: 10},
		{Rating: 2.0, ReviewCount: 5},
		{Rating: 0, ReviewCount: 0}, // unrated, excluded from the mean
	})
	assert.Equal(t, 3.0, average)
	assert.Equal(t, 15, total)
}

func TestStoreAggregateNoRatedProducts(t *testing.T) {
	average, total := StoreAggregate([]models.Product{{ReviewCount: 0}})
	assert.Equal(t, 0.0, average)
	assert.Equal(t, 0, total)
}
