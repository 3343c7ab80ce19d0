package packs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/hearth/internal/models"
)

// resolveCategory matches a category by id, 1-based position or name
// (case-insensitive), in that order.
func resolveCategory(categories []models.PackingCategory, ref string) (models.PackingCategory, error) {
	ref = strings.TrimSpace(ref)
	for _, c := range categories {
		if c.ID == ref {
			return c, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(categories) {
			return models.PackingCategory{}, fmt.Errorf("no category at position %d (have %d)", n, len(categories))
		}
		return categories[n-1], nil
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, ref) {
			return c, nil
		}
	}
	return models.PackingCategory{}, fmt.Errorf("no category %q", ref)
}

func resolveItem(category models.PackingCategory, ref string) (models.PackingItem, error) {
	ref = strings.TrimSpace(ref)
	for _, item := range category.Items {
		if item.ID == ref {
			return item, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(category.Items) {
			return models.PackingItem{}, fmt.Errorf("no item at position %d in %s (have %d)", n, category.Name, len(category.Items))
		}
		return category.Items[n-1], nil
	}
	for _, item := range category.Items {
		if strings.EqualFold(item.Name, ref) {
			return item, nil
		}
	}
	return models.PackingItem{}, fmt.Errorf("no item %q in %s", ref, category.Name)
}
