package packing

import "github.com/julianstephens/hearth/internal/models"

// Defaults returns a fresh copy of the starter category set.
func Defaults() []models.PackingCategory {
	item := func(id, name string) models.PackingItem {
		return models.PackingItem{ID: id, Name: name}
	}
	return []models.PackingCategory{
		{ID: "cloths", Name: "Clothes", Items: []models.PackingItem{
			item("cloth-1", "T-shirts"), item("cloth-2", "Underwear"),
		}},
		{ID: "valuables", Name: "Valuables", Items: []models.PackingItem{
			item("val-1", "Wallet"), item("val-2", "Passport"),
		}},
		{ID: "toiletries", Name: "Toiletries", Items: []models.PackingItem{
			item("toiletry-1", "Toothbrush"), item("toiletry-2", "Shampoo"),
		}},
		{ID: "electronics", Name: "Electronics", Items: []models.PackingItem{
			item("electronic-1", "Smartphone"), item("electronic-2", "Charger"),
		}},
		{ID: "tickets", Name: "Tickets", Items: []models.PackingItem{
			item("ticket-1", "Plane tickets"), item("ticket-2", "Hotel confirmation"),
		}},
		{ID: "daily-essentials", Name: "Daily essentials", Items: []models.PackingItem{
			item("daily-1", "Towel"), item("daily-2", "Handkerchief"),
		}},
		{ID: "others", Name: "Others", Items: []models.PackingItem{
			item("other-1", "Book"), item("other-2", "Medicine"),
		}},
	}
}
