// Package packing manages the two-level travel packing checklist. Items
// belong to exactly one category and are removed with it.
package packing

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/julianstephens/hearth/internal/codec"
	"github.com/julianstephens/hearth/internal/constants"
	"github.com/julianstephens/hearth/internal/logger"
	"github.com/julianstephens/hearth/internal/models"
	"github.com/julianstephens/hearth/internal/storage"
)

var categoryRule = validation.Map(
	validation.Key("id", codec.IsString),
	validation.Key("name", codec.IsString),
	validation.Key("items", codec.IsArray),
).AllowExtraKeys()

var itemRule = validation.Map(
	validation.Key("id", codec.IsString),
	validation.Key("name", codec.IsString),
	validation.Key("checked", codec.IsBool),
).AllowExtraKeys()

var itemShape = codec.ObjectShape[models.PackingItem](itemRule)

// CategoryShape accepts a category whose own fields are well formed and keeps
// only the items that are.
func CategoryShape(raw json.RawMessage) (models.PackingCategory, error) {
	if _, err := codec.Object(raw, categoryRule); err != nil {
		return models.PackingCategory{}, err
	}
	var stored struct {
		ID    string            `json:"id"`
		Name  string            `json:"name"`
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return models.PackingCategory{}, err
	}

	cat := models.PackingCategory{ID: stored.ID, Name: stored.Name, Items: make([]models.PackingItem, 0, len(stored.Items))}
	seen := make(map[string]bool, len(stored.Items))
	for _, rawItem := range stored.Items {
		item, err := itemShape(rawItem)
		if err != nil || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		cat.Items = append(cat.Items, item)
	}
	return cat, nil
}

// Options configures a List.
type Options struct {
	Key   string
	NewID func() string
}

// List owns the packing categories.
type List struct {
	store      storage.Provider
	key        string
	newID      func() string
	categories []models.PackingCategory
	status     codec.Status
	lastErr    error
}

// Open loads the packing list, falling back to Defaults when nothing usable is stored.
func Open(store storage.Provider, opts Options) *List {
	if opts.Key == "" {
		opts.Key = constants.KeyPacking
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	l := &List{store: store, key: opts.Key, newID: opts.NewID}

	raw, present, err := storage.Lookup(store, l.key)
	if err != nil {
		logger.Warn("Failed to read packing list, using defaults", "key", l.key, "error", err)
		present = false
	}
	res := codec.DecodeList(raw, present, codec.ListOptions[models.PackingCategory]{
		Shape:    CategoryShape,
		Fallback: Defaults,
		ID:       func(c models.PackingCategory) string { return c.ID },
	})
	if res.Status.FellBack() && res.Status != codec.Absent {
		logger.Warn("Stored packing list unusable, using defaults", "key", l.key, "status", res.Status)
	}
	if res.Dropped > 0 {
		logger.Warn("Dropped malformed packing categories", "key", l.key, "count", res.Dropped)
	}

	l.categories = res.Items
	l.status = res.Status
	return l
}

func (l *List) persist() {
	raw, err := codec.Encode(l.categories)
	if err == nil {
		err = l.store.Set(l.key, raw)
	}
	l.lastErr = err
	if err != nil {
		logger.Warn("Failed to persist packing list", "key", l.key, "error", err)
	}
}

func (l *List) categoryIndex(id string) int {
	for i := range l.categories {
		if l.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func itemIndex(items []models.PackingItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *List) idTaken(id string) bool {
	for _, c := range l.categories {
		if c.ID == id || itemIndex(c.Items, id) >= 0 {
			return true
		}
	}
	return false
}

func (l *List) uniqueID() string {
	base := l.newID()
	id := base
	for n := 1; l.idTaken(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

// cleanText trims name and replaces invalid UTF-8 the way the JSON encoder
// would, so the stored name matches the one held in memory.
func cleanText(name string) string {
	return strings.ToValidUTF8(strings.TrimSpace(name), "\uFFFD")
}

// AddCategory appends an empty category. A blank name is rejected.
func (l *List) AddCategory(name string) (models.PackingCategory, bool) {
	name = cleanText(name)
	if name == "" {
		return models.PackingCategory{}, false
	}
	c := models.PackingCategory{ID: l.uniqueID(), Name: name, Items: []models.PackingItem{}}
	l.categories = append(l.categories, c)
	l.persist()
	return c, true
}

// AddItem appends an unchecked item to categoryID. A blank name or an unknown
// category is rejected.
func (l *List) AddItem(categoryID, name string) (models.PackingItem, bool) {
	name = cleanText(name)
	ci := l.categoryIndex(categoryID)
	if name == "" || ci < 0 {
		return models.PackingItem{}, false
	}
	item := models.PackingItem{ID: l.uniqueID(), Name: name}
	l.categories[ci].Items = append(l.categories[ci].Items, item)
	l.persist()
	return item, true
}

// ToggleItem flips the checked state of an item.
func (l *List) ToggleItem(categoryID, itemID string) bool {
	ci := l.categoryIndex(categoryID)
	if ci < 0 {
		return false
	}
	ii := itemIndex(l.categories[ci].Items, itemID)
	if ii < 0 {
		return false
	}
	l.categories[ci].Items[ii].Checked = !l.categories[ci].Items[ii].Checked
	l.persist()
	return true
}

// DeleteItem removes one item from its category.
func (l *List) DeleteItem(categoryID, itemID string) bool {
	ci := l.categoryIndex(categoryID)
	if ci < 0 {
		return false
	}
	items := l.categories[ci].Items
	ii := itemIndex(items, itemID)
	if ii < 0 {
		return false
	}
	l.categories[ci].Items = append(items[:ii:ii], items[ii+1:]...)
	l.persist()
	return true
}

// DeleteCategory removes a category together with all of its items.
func (l *List) DeleteCategory(categoryID string) bool {
	ci := l.categoryIndex(categoryID)
	if ci < 0 {
		return false
	}
	l.categories = append(l.categories[:ci:ci], l.categories[ci+1:]...)
	l.persist()
	return true
}

// ResetAll unchecks every item and returns how many were checked.
func (l *List) ResetAll() int {
	cleared := 0
	for ci := range l.categories {
		for ii := range l.categories[ci].Items {
			if l.categories[ci].Items[ii].Checked {
				l.categories[ci].Items[ii].Checked = false
				cleared++
			}
		}
	}
	l.persist()
	return cleared
}

// Categories returns a deep copy of the categories in display order.
func (l *List) Categories() []models.PackingCategory {
	out := make([]models.PackingCategory, len(l.categories))
	for i, c := range l.categories {
		items := make([]models.PackingItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		out[i] = c
	}
	return out
}

// Category returns the category with id.
func (l *List) Category(id string) (models.PackingCategory, bool) {
	ci := l.categoryIndex(id)
	if ci < 0 {
		return models.PackingCategory{}, false
	}
	return l.Categories()[ci], true
}

// CheckedCount returns checked and total item counts across all categories.
func (l *List) CheckedCount() (checked, total int) {
	for _, c := range l.categories {
		for _, it := range c.Items {
			total++
			if it.Checked {
				checked++
			}
		}
	}
	return checked, total
}

// Status reports how the list was obtained at Open.
func (l *List) Status() codec.Status {
	return l.status
}

// Err returns the error from the most recent persist, if any.
func (l *List) Err() error {
	return l.lastErr
}
