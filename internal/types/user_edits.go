package types

import (
	"fmt"
	"strings"
)

// SkillCategory names one of the editable matched-skill lists.
type SkillCategory string

// Editable skill categories.
const (
	CategoryRequired   SkillCategory = "required"
	CategoryNiceToHave SkillCategory = "nice"
	CategorySoft       SkillCategory = "soft"
	CategoryTechnical  SkillCategory = "tech"
)

// UserEdits is the review-stage working state. It is owned by the review
// step and is only read by the generation phase.
type UserEdits struct {
	Recommendations        []string `json:"recommendations"`
	RequiredMatched        []string `json:"requiredMatched"`
	NiceToHaveMatched      []string `json:"niceToHaveMatched"`
	SoftSkillsMatched      []string `json:"softSkillsMatched"`
	TechnicalSkillsMatched []string `json:"technicalSkillsMatched"`
	ManualExclusions       string   `json:"manualExclusions"`
	IncludeCoverLetter     bool     `json:"includeCoverLetter"`
	CoverLetterText        string   `json:"coverLetterText"`
	CoverLetterLanguage    string   `json:"coverLetterLanguage"`
}

// NewUserEdits seeds the review state from an analysis. Cover-letter options
// start from the request so a re-review keeps what the user typed at intake.
func NewUserEdits(a AnalysisResult, req TailoringRequest) UserEdits {
	return UserEdits{
		Recommendations:        cloneStrings(a.Recommendations),
		RequiredMatched:        cloneStrings(a.RequiredMatched),
		NiceToHaveMatched:      cloneStrings(a.NiceToHaveMatched),
		SoftSkillsMatched:      cloneStrings(a.SoftSkillsMatched),
		TechnicalSkillsMatched: cloneStrings(a.TechnicalSkillsMatched),
		ManualExclusions:       req.NegativeConstraints,
		IncludeCoverLetter:     req.IncludeCoverLetter,
		CoverLetterText:        req.CoverLetter,
		CoverLetterLanguage:    req.Language(),
	}
}

// Clone returns a deep copy.
func (e UserEdits) Clone() UserEdits {
	out := e
	out.Recommendations = cloneStrings(e.Recommendations)
	out.RequiredMatched = cloneStrings(e.RequiredMatched)
	out.NiceToHaveMatched = cloneStrings(e.NiceToHaveMatched)
	out.SoftSkillsMatched = cloneStrings(e.SoftSkillsMatched)
	out.TechnicalSkillsMatched = cloneStrings(e.TechnicalSkillsMatched)
	return out
}

// ExcludeSkill removes every occurrence of skill from the category list.
func (e *UserEdits) ExcludeSkill(category SkillCategory, skill string) error {
	list, err := e.list(category)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(*list))
	for _, s := range *list {
		if s != skill {
			kept = append(kept, s)
		}
	}
	*list = kept
	return nil
}

// AddSkill appends a trimmed skill to the category list. Blank input is ignored.
func (e *UserEdits) AddSkill(category SkillCategory, skill string) error {
	skill = strings.TrimSpace(skill)
	list, err := e.list(category)
	if err != nil {
		return err
	}
	if skill == "" {
		return nil
	}
	*list = append(*list, skill)
	return nil
}

// SetRecommendation replaces the recommendation at index i.
func (e *UserEdits) SetRecommendation(i int, text string) error {
	if i < 0 || i >= len(e.Recommendations) {
		return fmt.Errorf("recommendation index %d out of range [0,%d)", i, len(e.Recommendations))
	}
	e.Recommendations[i] = text
	return nil
}

// Matched returns the edited matched-skill lists for overlaying an analysis.
func (e UserEdits) Matched() MatchedSkills {
	return MatchedSkills{
		Required:   e.RequiredMatched,
		NiceToHave: e.NiceToHaveMatched,
		Soft:       e.SoftSkillsMatched,
		Technical:  e.TechnicalSkillsMatched,
	}
}

// Overlay returns the request fields the review step replaces.
func (e UserEdits) Overlay() ReviewOverlay {
	return ReviewOverlay{
		NegativeConstraints: e.ManualExclusions,
		IncludeCoverLetter:  e.IncludeCoverLetter,
		CoverLetter:         e.CoverLetterText,
		CoverLetterLanguage: e.CoverLetterLanguage,
	}
}

func (e *UserEdits) list(category SkillCategory) (*[]string, error) {
	switch category {
	case CategoryRequired:
		return &e.RequiredMatched, nil
	case CategoryNiceToHave:
		return &e.NiceToHaveMatched, nil
	case CategorySoft:
		return &e.SoftSkillsMatched, nil
	case CategoryTechnical:
		return &e.TechnicalSkillsMatched, nil
	default:
		return nil, fmt.Errorf("unknown skill category %q", category)
	}
}
