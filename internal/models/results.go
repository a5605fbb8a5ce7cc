package models

import (
	"encoding/json"
	"time"
)

// ListFilters are the optional predicates for the listing path. All supplied
// filters combine with logical AND; the list-valued ones match when the
// posting's corresponding list shares at least one value.
type ListFilters struct {
	Q               string   `json:"q,omitempty"`
	Regions         []string `json:"regions,omitempty"`
	Fields          []string `json:"fields,omitempty"`
	CareerTypes     []string `json:"careerTypes,omitempty"`
	EducationLevels []string `json:"educationLevels,omitempty"`
	HireTypes       []string `json:"hireTypes,omitempty"`
	IncludeClosed   bool     `json:"includeClosed,omitempty"`
}

// SyncResult summarizes one full sync pass.
type SyncResult struct {
	TotalFetched int       `json:"totalFetched"`
	Inserted     int       `json:"inserted"`
	Updated      int       `json:"updated"`
	Deactivated  int       `json:"deactivated"`
	PageCount    int       `json:"pageCount"`
	SyncedAt     time.Time `json:"syncedAt"`
}

// MatchItem is one posting as returned by the listing and matching paths.
// MatchScore/MatchReason are zero-valued on the listing path.
type MatchItem struct {
	PostingID   int64  `json:"postingId"`
	Institution string `json:"institutionName"`
	Title       string `json:"title"`
	RecruitType string `json:"recruitTypeName"`

	Qualification string `json:"qualificationText"`
	Preference    string `json:"preferenceText"`
	OpenedOn      string `json:"openedOn,omitempty"`
	ClosedOn      string `json:"closedOn,omitempty"`
	OngoingFlag   string `json:"ongoingFlag,omitempty"`

	FieldNamesRaw     string `json:"fieldNamesRaw"`
	HireTypeNamesRaw  string `json:"hireTypeNamesRaw"`
	RegionNamesRaw    string `json:"regionNamesRaw"`
	EducationNamesRaw string `json:"educationConditionNamesRaw"`

	FieldNames     []string `json:"fieldNames"`
	HireTypeNames  []string `json:"hireTypeNames"`
	RegionNames    []string `json:"regionNames"`
	EducationNames []string `json:"educationConditionNames"`

	SourceURL string `json:"srcUrl,omitempty"`

	MatchScore  int    `json:"matchScore"`
	MatchReason string `json:"matchReason"`

	Raw json.RawMessage `json:"raw,omitempty"`
}

// Page is a paginated result slice. NextOffset is always
// offset + len(Items); HasMore reports whether NextOffset < Total.
type Page struct {
	Items      []MatchItem `json:"items"`
	Total      int         `json:"total"`
	NextOffset int         `json:"nextOffset"`
	HasMore    bool        `json:"hasMore"`
}

// FilterOptions are the distinct facet values for UI filter population.
type FilterOptions struct {
	Regions         []string `json:"regions"`
	Fields          []string `json:"fields"`
	CareerTypes     []string `json:"careerTypes"`
	EducationLevels []string `json:"educationLevels"`
	HireTypes       []string `json:"hireTypes"`
}
