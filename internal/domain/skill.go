package domain

// SkillCategory groups skills on the site. The set is open-ended; the
// constants below are the categories the canonical dataset uses.
type SkillCategory string

const (
	SkillCategoryFrontend SkillCategory = "frontend"
	SkillCategoryBackend  SkillCategory = "backend"
	SkillCategoryAIML     SkillCategory = "ai_ml"
	SkillCategoryTools    SkillCategory = "tools"
)

// Skill represents a technology and how well it is known
type Skill struct {
	ID          int64         `json:"id" yaml:"-"`
	Name        string        `json:"name" yaml:"name"`
	Category    SkillCategory `json:"category" yaml:"category"`
	Proficiency int           `json:"proficiency" yaml:"proficiency"` // 0-100, defaults to 0
}

// ClampProficiency bounds p to the 0-100 range
func ClampProficiency(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
