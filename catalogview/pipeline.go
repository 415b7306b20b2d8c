package catalogview

import (
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/collate"

	"vitrina/models"
)

// baseProducts returns the resolved products of the catalog in item order
func baseProducts(catalog *models.Catalog) []models.Product {
	if catalog == nil {
		return []models.Product{}
	}
	return lo.FilterMap(catalog.Items, func(item models.CatalogItem, _ int) (models.Product, bool) {
		if item.Product == nil {
			return models.Product{}, false
		}
		return *item.Product, true
	})
}

// uniqueCategories returns AllCategories followed by the sorted distinct
// non-empty categories of products. Categories arrive trimmed from the store.
func uniqueCategories(products []models.Product, col *collate.Collator) []string {
	categories := lo.Uniq(lo.FilterMap(products, func(p models.Product, _ int) (string, bool) {
		return p.Category, p.Category != ""
	}))
	slices.SortFunc(categories, col.CompareString)
	return append([]string{AllCategories}, categories...)
}

// filterAndSort applies the category filter, then the search filter, then a
// stable sort. The input slice is not modified.
func filterAndSort(products []models.Product, c Criteria, col *collate.Collator) []models.Product {
	result := slices.Clone(products)

	if c.Category != AllCategories {
		result = lo.Filter(result, func(p models.Product, _ int) bool {
			return p.Category == c.Category
		})
	}

	if c.SearchTerm != "" {
		needle := strings.ToLower(c.SearchTerm)
		result = lo.Filter(result, func(p models.Product, _ int) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				(p.Code != "" && strings.Contains(strings.ToLower(p.Code), needle))
		})
	}

	switch c.SortOrder {
	case SortNameAsc:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	case SortPriceAsc:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(result, func(a, b models.Product) int {
			return b.Price.Cmp(a.Price)
		})
	}

	if result == nil {
		return []models.Product{}
	}
	return result
}

// totalPages is ceil(count / pageSize)
func totalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// clampPage keeps page within [1, total]; with no pages it is 1
func clampPage(page, total int) int {
	if total == 0 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// paginate returns the 1-indexed page of products
func paginate(products []models.Product, page, pageSize int) []models.Product {
	start := (page - 1) * pageSize
	if start >= len(products) || start < 0 {
		return []models.Product{}
	}
	end := min(start+pageSize, len(products))
	return products[start:end]
}
