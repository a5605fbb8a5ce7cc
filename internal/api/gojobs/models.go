package gojobs

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Record is the typed form of one posting as the public recruitment registry
// returns it. The upstream payload is loosely typed (ids occasionally arrive
// as strings, text fields as null), so all coercion and defaulting happens
// in this package; the rest of the engine only ever sees normalized records.
type Record struct {
	PostingID FlexInt64 `json:"recrutPblntSn"`

	InstCode    string `json:"pblntInstCd,omitempty"`
	StdInstCode string `json:"pbadmsStdInstCd,omitempty"`
	Institution string `json:"instNm"`
	Title       string `json:"recrutPbancTtl"`

	RecruitTypeCode string `json:"recrutSe,omitempty"`
	RecruitType     string `json:"recrutSeNm"`

	Qualification    string `json:"aplyQlfcCn"`
	DisqualifyReason string `json:"disqlfcRsn,omitempty"`
	Preference       string `json:"prefCn"`
	PreferenceCond   string `json:"prefCondCn,omitempty"`

	OpenedOn    string `json:"pbancBgngYmd"`
	ClosedOn    string `json:"pbancEndYmd"`
	OngoingFlag string `json:"ongoingYn"`

	FieldCodes     string `json:"ncsCdLst,omitempty"`
	FieldNames     string `json:"ncsCdNmLst"`
	HireTypeCodes  string `json:"hireTypeLst,omitempty"`
	HireTypeNames  string `json:"hireTypeNmLst"`
	RegionCodes    string `json:"workRgnLst,omitempty"`
	RegionNames    string `json:"workRgnNmLst"`
	EducationCodes string `json:"acbgCondLst,omitempty"`
	EducationNames string `json:"acbgCondNmLst"`

	Headcount       FlexInt64 `json:"recrutNope,omitempty"`
	ReplacementFlag string    `json:"replmprYn,omitempty"`
	ScreeningMethod string    `json:"scrnprcdrMthdExpln,omitempty"`
	NonAttachReason string    `json:"nonatchRsn,omitempty"`

	Files []File `json:"files,omitempty"`
	Steps []Step `json:"steps,omitempty"`

	SourceURL string `json:"srcUrl,omitempty"`
}

type File struct {
	FileNo   FlexInt64 `json:"recrutAtchFileNo,omitempty"`
	SortNo   FlexInt64 `json:"sortNo,omitempty"`
	Name     string    `json:"atchFileNm,omitempty"`
	FileType string    `json:"atchFileType,omitempty"`
	URL      string    `json:"url,omitempty"`
}

type Step struct {
	StepNo    FlexInt64 `json:"recrutStepSn,omitempty"`
	PostingID FlexInt64 `json:"recrutPblntSn,omitempty"`
	Title     string    `json:"recrutPbancTtl,omitempty"`
	SortNo    FlexInt64 `json:"sortNo,omitempty"`
}

// normalize trims every free-text field in place so downstream code never
// re-trims.
func (r *Record) normalize() {
	fields := []*string{
		&r.Institution, &r.Title, &r.RecruitType,
		&r.Qualification, &r.DisqualifyReason, &r.Preference, &r.PreferenceCond,
		&r.OpenedOn, &r.ClosedOn, &r.OngoingFlag,
		&r.FieldNames, &r.HireTypeNames, &r.RegionNames, &r.EducationNames,
		&r.ReplacementFlag, &r.ScreeningMethod, &r.NonAttachReason,
		&r.SourceURL,
	}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// FlexInt64 decodes a JSON number that the registry sometimes serializes as
// a quoted string. Null and empty values decode to zero.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = FlexInt64(parsed)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt64(n)
	return nil
}

// ListResponse is one page of the registry's list endpoint plus the
// source-reported catalog size.
type ListResponse struct {
	Items      []Record
	TotalCount int
}

type listEnvelope struct {
	ResultCode FlexInt64 `json:"resultCode"`
	ResultMsg  string    `json:"resultMsg"`
	TotalCount int       `json:"totalCount"`
	Result     []Record  `json:"result"`
}

type detailEnvelope struct {
	ResultCode FlexInt64 `json:"resultCode"`
	ResultMsg  string    `json:"resultMsg"`
	Result     *Record   `json:"result"`
}
