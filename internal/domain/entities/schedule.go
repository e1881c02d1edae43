package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Feed is the full upstream document: duty-hospital day records keyed by
// ISO calendar date. Key order follows the upstream document; the first and
// last keys bound the selectable date range.
type Feed struct {
	dates []string
	days  map[string]*DayRecord
}

// DayRecord is one date's worth of duty-hospital data.
type DayRecord struct {
	DateWeek  string          `json:"date_week"`
	Hospitals []HospitalEntry `json:"hospitals"`
}

// HospitalEntry is one hospital's listing within a DayRecord.
type HospitalEntry struct {
	Name        string   `json:"name"`
	Medical     string   `json:"medical"`
	Time        string   `json:"time"`
	Daytime     string   `json:"daytime"`
	Address     string   `json:"address"`
	HiraAddress string   `json:"hira_address"`
	HiraName    string   `json:"hira_name"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Type        Category `json:"type"`
	Link        string   `json:"link"`
}

// ParseFeed decodes the upstream document, preserving key order and failing
// fast when a record is missing required fields.
func ParseFeed(data []byte) (*Feed, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("feed must be a JSON object, got %v", tok)
	}

	feed := &Feed{days: make(map[string]*DayRecord)}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode feed key: %w", err)
		}
		dateKey := keyTok.(string)

		var day DayRecord
		if err := dec.Decode(&day); err != nil {
			return nil, fmt.Errorf("failed to decode day %s: %w", dateKey, err)
		}
		if err := day.Validate(); err != nil {
			return nil, fmt.Errorf("invalid day %s: %w", dateKey, err)
		}

		if _, exists := feed.days[dateKey]; !exists {
			feed.dates = append(feed.dates, dateKey)
		}
		feed.days[dateKey] = &day
	}

	if len(feed.dates) == 0 {
		return nil, fmt.Errorf("feed contains no dates")
	}

	return feed, nil
}

// Validate checks that a day record carries every field the table, map and
// announcement views depend on.
func (d *DayRecord) Validate() error {
	if d.DateWeek == "" {
		return fmt.Errorf("date_week is required")
	}
	if len(d.Hospitals) == 0 {
		return fmt.Errorf("at least one hospital entry is required")
	}
	for i, h := range d.Hospitals {
		if h.Name == "" {
			return fmt.Errorf("hospital %d: name is required", i)
		}
		if h.Time == "" {
			return fmt.Errorf("hospital %d (%s): time is required", i, h.Name)
		}
		if h.Daytime == "" {
			return fmt.Errorf("hospital %d (%s): daytime is required", i, h.Name)
		}
		if h.HiraAddress == "" || h.HiraName == "" {
			return fmt.Errorf("hospital %d (%s): phonetic fields are required", i, h.Name)
		}
		if h.Lat == 0 || h.Lon == 0 {
			return fmt.Errorf("hospital %d (%s): coordinates are required", i, h.Name)
		}
	}
	return nil
}

// Dates returns the date keys in upstream order.
func (f *Feed) Dates() []string {
	return f.dates
}

// MinDate returns the first selectable date.
func (f *Feed) MinDate() string {
	return f.dates[0]
}

// MaxDate returns the last selectable date.
func (f *Feed) MaxDate() string {
	return f.dates[len(f.dates)-1]
}

// Day returns the record for a date key, if present.
func (f *Feed) Day(dateKey string) (*DayRecord, bool) {
	day, ok := f.days[dateKey]
	return day, ok
}
