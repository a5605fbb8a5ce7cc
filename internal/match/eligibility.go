package match

import (
	"strings"

	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/models"
)

// regionKeywords are the top-level Korean administrative regions recognized
// in both posting region lists and candidate addresses. 전국 is a posting-side
// wildcard and never derives from an address.
var regionKeywords = []string{
	"서울", "경기", "인천", "부산", "대구", "광주", "대전", "울산", "세종",
	"강원", "충북", "충남", "전북", "전남", "경북", "경남", "제주", "전국",
}

// step mirrors the before/after accounting of one eligibility pass.
type step struct {
	Initial int
	Dropped int
	Left    int
}

type predicate struct {
	name string
	keep func(profile *models.Profile, rec *gojobs.Record) bool
}

// eligibilitySteps are the deterministic filters applied before any model
// call. Each is independent: a posting survives only when every one keeps it.
func eligibilitySteps() []predicate {
	return []predicate{
		{name: "education", keep: matchesEducation},
		{name: "career", keep: matchesCareer},
		{name: "region", keep: matchesRegion},
	}
}

// matchesEducation keeps the posting unless it names a degree requirement the
// profile cannot document. Unknown requirement phrasings pass through; only
// the explicit degree conditions reject.
func matchesEducation(profile *models.Profile, rec *gojobs.Record) bool {
	condition := strings.TrimSpace(rec.EducationNames)
	if condition == "" || strings.Contains(condition, "학력무관") {
		return true
	}

	if strings.Contains(condition, "대졸") || strings.Contains(condition, "대학") {
		for _, entry := range profile.Education {
			status := entry.GraduationStatus
			if strings.Contains(status, "졸업") ||
				strings.Contains(status, "재학") ||
				strings.Contains(status, "수료") {
				return true
			}
		}
		return false
	}

	return true
}

// matchesCareer keeps the posting when the profile's work history fits the
// recruit type. A type naming both 신입 and 경력 accepts anyone.
func matchesCareer(profile *models.Profile, rec *gojobs.Record) bool {
	recruitType := strings.TrimSpace(rec.RecruitType)
	if recruitType == "" {
		return true
	}

	wantsNew := strings.Contains(recruitType, "신입")
	wantsExperienced := strings.Contains(recruitType, "경력")

	switch {
	case wantsNew && wantsExperienced:
		return true
	case wantsExperienced:
		return len(profile.WorkExperience) > 0
	case wantsNew:
		return len(profile.WorkExperience) == 0
	default:
		return true
	}
}

// matchesRegion keeps the posting when its work regions cover the candidate's
// home region. Without a recognizable home region every posting passes.
func matchesRegion(profile *models.Profile, rec *gojobs.Record) bool {
	home := candidateRegion(profile.Address)
	if home == "" {
		return true
	}

	regions := strings.TrimSpace(rec.RegionNames)
	if regions == "" || strings.Contains(regions, "전국") {
		return true
	}

	return strings.Contains(regions, home)
}

// candidateRegion extracts the first recognized region keyword from a
// free-form address.
func candidateRegion(address string) string {
	for _, keyword := range regionKeywords {
		if keyword == "전국" {
			continue
		}
		if strings.Contains(address, keyword) {
			return keyword
		}
	}
	return ""
}
