package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// Posting is one row of the local recruitment catalog. posting_id is the
// external registry's identifier and is never generated locally. The raw CSV
// columns are kept verbatim for passthrough; the array columns are re-derived
// from them on every write and back the containment indexes.
type Posting struct {
	PostingID   int64  `db:"posting_id"`
	Institution string `db:"institution"`
	Title       string `db:"title"`
	RecruitType string `db:"recruit_type"`

	Qualification string  `db:"qualification"`
	Preference    string  `db:"preference"`
	OpenedOn      *string `db:"opened_on"`
	ClosedOn      *string `db:"closed_on"`
	OngoingFlag   *string `db:"ongoing_flag"`

	FieldNamesRaw     string `db:"field_names_raw"`
	HireTypeNamesRaw  string `db:"hire_type_names_raw"`
	RegionNamesRaw    string `db:"region_names_raw"`
	EducationNamesRaw string `db:"education_names_raw"`

	FieldNames     pq.StringArray `db:"field_names"`
	HireTypeNames  pq.StringArray `db:"hire_type_names"`
	RegionNames    pq.StringArray `db:"region_names"`
	EducationNames pq.StringArray `db:"education_names"`

	SearchText string `db:"search_text"`

	IsActive   bool      `db:"is_active"`
	IsOngoing  bool      `db:"is_ongoing"`
	LastSeenAt time.Time `db:"last_seen_at"`
	UpdatedAt  time.Time `db:"updated_at"`

	Raw RawJSON `db:"raw"`
}

// FacetRow carries only the columns needed to build filter options.
type FacetRow struct {
	RecruitType    string         `db:"recruit_type"`
	FieldNames     pq.StringArray `db:"field_names"`
	HireTypeNames  pq.StringArray `db:"hire_type_names"`
	RegionNames    pq.StringArray `db:"region_names"`
	EducationNames pq.StringArray `db:"education_names"`
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	*r = RawJSON(bytes)
	return nil
}
