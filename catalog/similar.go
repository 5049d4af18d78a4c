package catalog

import (
	"sort"

	"kioskmart/models"
)

const (
	DefaultSimilarLimit = 6
	MaxSimilarLimit     = 24

	scoreSameCategory    = 10
	scoreSameSubcategory = 5
	scoreSameBrand       = 3
)

// SimilarityScore is the additive shared-taxonomy score between two distinct
// products. Subcategory and brand only count when both sides are non-null.
func SimilarityScore(p, other *models.Product) int {
	score := 0
	if p.CategoryID != 0 && p.CategoryID == other.CategoryID {
		score += scoreSameCategory
	}
	if p.SubcategoryID != nil && other.SubcategoryID != nil &&
		*p.SubcategoryID == *other.SubcategoryID {
		score += scoreSameSubcategory
	}
	if p.BrandID != nil && other.BrandID != nil && *p.BrandID == *other.BrandID {
		score += scoreSameBrand
	}
	return score
}

// RankSimilar orders candidates by descending similarity to p and returns
// the top limit. The sort is stable, so equal scores keep the scan order.
// This is a full O(n) scan, fine at kiosk catalog sizes.
func RankSimilar(p *models.Product, candidates []models.Product, limit int) []models.Product {
	if limit < 1 {
		limit = DefaultSimilarLimit
	}
	if limit > MaxSimilarLimit {
		limit = MaxSimilarLimit
	}

	type scored struct {
		product models.Product
		score   int
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == p.ID {
			continue
		}
		ranked = append(ranked, scored{candidate, SimilarityScore(p, &candidate)})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	result := make([]models.Product, 0, len(ranked))
	for _, r := range ranked {
		result = append(result, r.product)
	}
	return result
}
