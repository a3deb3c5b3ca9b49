// Package categories holds the App Store category taxonomy used to label
// ranking results.
package categories

import (
	"fmt"
	"strconv"
	"strings"
)

// Other is reported for any category code missing from the table.
const Other = "Other"

// Category is one App Store genre code and its display name.
type Category struct {
	ID   int
	Name string
}

// Table is an ordered, read-only set of categories. Scrape order and
// overwrite precedence both follow the definition order.
type Table struct {
	entries []Category
	byID    map[int]string
}

var defaultEntries = []Category{
	{6018, "Books"},
	{6000, "Business"},
	{6017, "Education"},
	{6016, "Entertainment"},
	{6015, "Finance"},
	{6023, "Food & Drink"},
	{6014, "Games"},
	{6013, "Health & Fitness"},
	{6011, "Music"},
	{6010, "Navigation"},
	{6009, "News"},
	{6008, "Photo & Video"},
	{6007, "Productivity"},
	{6006, "Reference"},
	{6005, "Social Networking"},
	{6024, "Shopping"},
	{6004, "Sports"},
	{6001, "Weather"},
}

// Default returns the iOS ranking taxonomy.
func Default() Table {
	return New(defaultEntries)
}

// New builds a table from entries, keeping their order. Later duplicates of
// an id are ignored.
func New(entries []Category) Table {
	t := Table{
		entries: make([]Category, 0, len(entries)),
		byID:    make(map[int]string, len(entries)),
	}
	for _, c := range entries {
		if _, dup := t.byID[c.ID]; dup {
			continue
		}
		t.byID[c.ID] = c.Name
		t.entries = append(t.entries, c)
	}
	return t
}

// Parse selects a subset of the default table from a comma separated list of
// ids, e.g. "6018,6014". Unknown ids are rejected.
func Parse(list string) (Table, error) {
	all := Default()
	var picked []Category
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return Table{}, fmt.Errorf("invalid category id %q: %w", part, err)
		}
		name, ok := all.byID[id]
		if !ok {
			return Table{}, fmt.Errorf("unknown category id %d", id)
		}
		picked = append(picked, Category{ID: id, Name: name})
	}
	if len(picked) == 0 {
		return Table{}, fmt.Errorf("no category ids in %q", list)
	}
	return New(picked), nil
}

// Name returns the display name for id, or Other.
func (t Table) Name(id int) string {
	if name, ok := t.byID[id]; ok {
		return name
	}
	return Other
}

// Names maps each id through Name.
func (t Table) Names(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, t.Name(id))
	}
	return names
}

// Entries returns a copy of the table in definition order.
func (t Table) Entries() []Category {
	return append([]Category(nil), t.entries...)
}

func (t Table) Len() int {
	return len(t.entries)
}
