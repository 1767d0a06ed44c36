package reviews

import "pasarin/models"

// ProductAggregate computes the mean rating and count over published reviews.
func ProductAggregate(reviews []models.Review) (rating float64, count int) {
	sum := 0
	for _, rv := range reviews {
		if rv.Status != models.ReviewPublished {
			continue
		}
		sum += rv.Rating
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// StoreAggregate rolls product ratings up to the store: total reviews is the
// sum of per-product counts, average rating the mean over rated products.
func StoreAggregate(products []models.Product) (average float64, total int) {
	sum := 0.0
	rated := 0
	for _, p := range products {
		if p.ReviewCount == 0 {
			continue
		}
		sum += p.Rating
		rated++
		total += p.ReviewCount
	}
	if rated == 0 {
		return 0, total
	}
	return sum / float64(rated), total
}
