package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingField is returned when an upstream entry lacks a key the report needs.
var ErrMissingField = errors.New("missing field")

// RankingPayload is the raw get_category_rankings response. Each inner slice
// is one rank position holding the free, paid and grossing entries.
type RankingPayload [][]RawAppEntry

// Humanized is an upstream "humanized" figure that arrives either as a JSON
// string ("1K") or as a number. Its text is kept verbatim.
type Humanized string

func (h *Humanized) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*h = Humanized(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("humanized value must be a string or number: %w", err)
	}
	*h = Humanized(n.String())
	return nil
}

func (h Humanized) String() string {
	return string(h)
}

// Downloads holds humanized_worldwide_last_month_downloads.
type Downloads struct {
	Downloads Optional[Humanized] `json:"downloads"`
}

// Revenue holds humanized_worldwide_last_month_revenue.
type Revenue struct {
	Revenue *float64 `json:"revenue"`
}

// RawAppEntry is one app inside a ranking list, as returned by Sensor Tower.
// Pointer fields are required and must be non-null: they key the report or
// feed the revenue arithmetic. Optional fields must be present but may be
// null, which renders as an empty cell.
type RawAppEntry struct {
	ID                    *int64            `json:"id"`
	AppID                 *int64            `json:"app_id,omitempty"`
	Name                  Optional[string]  `json:"name"`
	URL                   Optional[string]  `json:"url"`
	Categories            *[]int            `json:"categories"`
	Rating                Optional[float64] `json:"rating"`
	GlobalRatingCount     Optional[int64]   `json:"global_rating_count"`
	RatingCountCurVersion Optional[int64]   `json:"rating_count_for_current_version"`
	Downloads             *Downloads        `json:"humanized_worldwide_last_month_downloads"`
	Revenue               *Revenue          `json:"humanized_worldwide_last_month_revenue"`
	Rank                  *int64            `json:"rank"`
	BuysAds               Optional[bool]    `json:"buys_ads"`
	ShowsAds              Optional[bool]    `json:"shows_ads"`
}

// Validate reports every required key absent from the entry.
func (e *RawAppEntry) Validate() error {
	var missing []string
	check := func(ok bool, key string) {
		if !ok {
			missing = append(missing, key)
		}
	}
	check(e.ID != nil, "id")
	check(e.Name.Set, "name")
	check(e.URL.Set, "url")
	check(e.Categories != nil, "categories")
	check(e.Rating.Set, "rating")
	check(e.GlobalRatingCount.Set, "global_rating_count")
	check(e.RatingCountCurVersion.Set, "rating_count_for_current_version")
	check(e.Downloads != nil && e.Downloads.Downloads.Set, "humanized_worldwide_last_month_downloads.downloads")
	check(e.Revenue != nil && e.Revenue.Revenue != nil, "humanized_worldwide_last_month_revenue.revenue")
	check(e.Rank != nil, "rank")
	check(e.BuysAds.Set, "buys_ads")
	check(e.ShowsAds.Set, "shows_ads")

	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
}
