package models

// Profile is the candidate profile the matching path ranks against. It is
// supplied per request and owned by an external resume store; this engine
// only reads it.
type Profile struct {
	Name       string `json:"name,omitempty"`
	DesiredJob string `json:"desiredJob"`
	Address    string `json:"address"`

	Education        []EducationEntry     `json:"education"`
	WorkExperience   []WorkEntry          `json:"workExperience"`
	CoreCompetencies []CompetencyEntry    `json:"coreCompetencies"`
	Certifications   []CertificationEntry `json:"certifications"`
}

type EducationEntry struct {
	SchoolName       string `json:"schoolName"`
	Major            string `json:"major"`
	GraduationStatus string `json:"graduationStatus"`
}

type WorkEntry struct {
	CompanyName string `json:"companyName"`
	MainTask    string `json:"mainTask"`
}

type CompetencyEntry struct {
	FullDescription string `json:"fullDescription"`
}

type CertificationEntry struct {
	CertificationName string `json:"certificationName"`
	Institution       string `json:"institution"`
}

// CoverLetter holds the optional free-text sections blended into the
// profile summary.
type CoverLetter struct {
	GrowthProcess          string `json:"growthProcess,omitempty"`
	StrengthsAndWeaknesses string `json:"strengthsAndWeaknesses,omitempty"`
	KeyExperience          string `json:"keyExperience,omitempty"`
	Motivation             string `json:"motivation,omitempty"`
}
