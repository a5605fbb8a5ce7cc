package syncer

import (
	"encoding/json"
	"time"

	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/models"
)

// postingFromRecord maps one registry record onto a store row. The raw CSV
// strings are kept verbatim; the derived lists and the search blob are
// rebuilt here and nowhere else.
func postingFromRecord(rec gojobs.Record, seenAt time.Time) models.Posting {
	raw, _ := json.Marshal(rec)

	return models.Posting{
		PostingID:   int64(rec.PostingID),
		Institution: rec.Institution,
		Title:       rec.Title,
		RecruitType: rec.RecruitType,

		Qualification: rec.Qualification,
		Preference:    rec.Preference,
		OpenedOn:      optional(rec.OpenedOn),
		ClosedOn:      optional(rec.ClosedOn),
		OngoingFlag:   optional(rec.OngoingFlag),

		FieldNamesRaw:     rec.FieldNames,
		HireTypeNamesRaw:  rec.HireTypeNames,
		RegionNamesRaw:    rec.RegionNames,
		EducationNamesRaw: rec.EducationNames,

		FieldNames:     models.SplitCSV(rec.FieldNames),
		HireTypeNames:  models.SplitCSV(rec.HireTypeNames),
		RegionNames:    models.SplitCSV(rec.RegionNames),
		EducationNames: models.SplitCSV(rec.EducationNames),

		SearchText: models.BuildSearchText(
			rec.Institution,
			rec.Title,
			rec.RecruitType,
			rec.Qualification,
			rec.Preference,
			rec.FieldNames,
			rec.RegionNames,
			rec.HireTypeNames,
			rec.EducationNames,
		),

		IsActive:   true,
		IsOngoing:  models.OngoingFromFlag(rec.OngoingFlag),
		LastSeenAt: seenAt,

		Raw: models.RawJSON(raw),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
