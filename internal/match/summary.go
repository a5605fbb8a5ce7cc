package match

import (
	"fmt"
	"strings"

	"recruit-match/internal/models"
)

const maxSummaryRunes = 2000

// BuildProfileSummary flattens the candidate profile and optional cover
// letter into the labelled text block fed to the scoring prompt. The result
// is capped so an oversized resume cannot crowd the postings out of the
// prompt.
func BuildProfileSummary(profile *models.Profile, cover *models.CoverLetter) string {
	var b strings.Builder

	if profile.DesiredJob != "" {
		fmt.Fprintf(&b, "희망 직무: %s\n", profile.DesiredJob)
	}
	if profile.Address != "" {
		fmt.Fprintf(&b, "거주지: %s\n", profile.Address)
	}

	if len(profile.Education) > 0 {
		b.WriteString("학력:\n")
		for _, e := range profile.Education {
			fmt.Fprintf(&b, "- %s %s (%s)\n", e.SchoolName, e.Major, e.GraduationStatus)
		}
	}

	if len(profile.WorkExperience) > 0 {
		b.WriteString("경력:\n")
		for _, w := range profile.WorkExperience {
			fmt.Fprintf(&b, "- %s: %s\n", w.CompanyName, w.MainTask)
		}
	}

	if len(profile.CoreCompetencies) > 0 {
		b.WriteString("핵심 역량:\n")
		for _, c := range profile.CoreCompetencies {
			fmt.Fprintf(&b, "- %s\n", c.FullDescription)
		}
	}

	if len(profile.Certifications) > 0 {
		b.WriteString("자격증:\n")
		for _, c := range profile.Certifications {
			fmt.Fprintf(&b, "- %s (%s)\n", c.CertificationName, c.Institution)
		}
	}

	if cover != nil {
		sections := []struct {
			label string
			text  string
		}{
			{"성장 과정", cover.GrowthProcess},
			{"성격의 장단점", cover.StrengthsAndWeaknesses},
			{"핵심 경험", cover.KeyExperience},
			{"지원 동기", cover.Motivation},
		}

		wroteHeader := false
		for _, section := range sections {
			if strings.TrimSpace(section.text) == "" {
				continue
			}
			if !wroteHeader {
				b.WriteString("자기소개서 요약:\n")
				wroteHeader = true
			}
			fmt.Fprintf(&b, "[%s] %s\n", section.label, section.text)
		}
	}

	return models.Truncate(strings.TrimSpace(b.String()), maxSummaryRunes)
}
