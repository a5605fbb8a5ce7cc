package match

import (
	"testing"

	"recruit-match/internal/api/gojobs"
	"recruit-match/internal/models"
)

func graduateProfile() *models.Profile {
	return &models.Profile{
		Address: "서울특별시 강남구",
		Education: []models.EducationEntry{
			{SchoolName: "한국대학교", Major: "컴퓨터공학", GraduationStatus: "졸업"},
		},
	}
}

func TestMatchesEducation(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		profile   *models.Profile
		want      bool
	}{
		{"empty condition passes", "", &models.Profile{}, true},
		{"any-education passes", "학력무관", &models.Profile{}, true},
		{"degree requirement without education fails", "대졸이상", &models.Profile{}, false},
		{"degree requirement with graduate passes", "대졸이상", graduateProfile(), true},
		{
			"degree requirement with enrolled student passes", "대학 재학 이상",
			&models.Profile{Education: []models.EducationEntry{{GraduationStatus: "재학"}}},
			true,
		},
		{
			"degree requirement with dropout fails", "대졸이상",
			&models.Profile{Education: []models.EducationEntry{{GraduationStatus: "중퇴"}}},
			false,
		},
		{"unrecognized condition passes", "고졸이상", &models.Profile{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &gojobs.Record{EducationNames: tt.condition}
			if got := matchesEducation(tt.profile, rec); got != tt.want {
				t.Errorf("matchesEducation(%q) = %v, want %v", tt.condition, got, tt.want)
			}
		})
	}
}

func TestMatchesCareer(t *testing.T) {
	experienced := &models.Profile{WorkExperience: []models.WorkEntry{{CompanyName: "전직장"}}}
	fresh := &models.Profile{}

	tests := []struct {
		name        string
		recruitType string
		profile     *models.Profile
		want        bool
	}{
		{"empty type passes anyone", "", fresh, true},
		{"combined type passes fresh", "신입/경력", fresh, true},
		{"combined type passes experienced", "신입/경력", experienced, true},
		{"experienced-only rejects fresh", "경력", fresh, false},
		{"experienced-only passes experienced", "경력", experienced, true},
		{"new-only passes fresh", "신입", fresh, true},
		{"new-only rejects experienced", "신입", experienced, false},
		{"other type passes", "별정직", fresh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &gojobs.Record{RecruitType: tt.recruitType}
			if got := matchesCareer(tt.profile, rec); got != tt.want {
				t.Errorf("matchesCareer(%q) = %v, want %v", tt.recruitType, got, tt.want)
			}
		})
	}
}

func TestMatchesRegion(t *testing.T) {
	seoulite := &models.Profile{Address: "서울특별시 마포구"}

	tests := []struct {
		name    string
		regions string
		profile *models.Profile
		want    bool
	}{
		{"posting covering home region passes", "서울,경기", seoulite, true},
		{"posting elsewhere fails", "부산,울산", seoulite, false},
		{"nationwide posting passes", "전국", seoulite, true},
		{"posting without regions passes", "", seoulite, true},
		{"unrecognizable address passes everything", "부산,울산", &models.Profile{Address: "어딘가"}, true},
		{"empty address passes everything", "부산", &models.Profile{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &gojobs.Record{RegionNames: tt.regions}
			if got := matchesRegion(tt.profile, rec); got != tt.want {
				t.Errorf("matchesRegion(%q) = %v, want %v", tt.regions, got, tt.want)
			}
		})
	}
}

func TestCandidateRegion(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"서울특별시 강남구 테헤란로", "서울"},
		{"대전광역시 유성구", "대전"},
		{"경기도 성남시 분당구", "경기"},
		{"알 수 없는 주소", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := candidateRegion(tt.address); got != tt.want {
			t.Errorf("candidateRegion(%q) = %q, want %q", tt.address, got, tt.want)
		}
	}
}

func TestEligibilityStepsAreIndependent(t *testing.T) {
	// posting passes region and career but fails education
	profile := &models.Profile{
		Address:        "서울시",
		WorkExperience: []models.WorkEntry{{CompanyName: "회사"}},
	}
	rec := &gojobs.Record{
		RecruitType:    "경력",
		RegionNames:    "서울",
		EducationNames: "대졸이상",
	}

	if !matchesCareer(profile, rec) || !matchesRegion(profile, rec) {
		t.Fatal("career and region should pass")
	}
	if matchesEducation(profile, rec) {
		t.Fatal("education should fail independently")
	}
}
