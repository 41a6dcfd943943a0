package domain

// Project represents a portfolio showcase entry
type Project struct {
	ID               int64    `json:"id" yaml:"-"`
	Title            string   `json:"title" yaml:"title"`
	Description      string   `json:"description" yaml:"description"`
	ProblemStatement string   `json:"problemStatement" yaml:"problem_statement"`
	TechStack        []string `json:"techStack" yaml:"tech_stack"`
	Challenges       string   `json:"challenges" yaml:"challenges"`
	Solution         string   `json:"solution" yaml:"solution"`
	Outcome          string   `json:"outcome" yaml:"outcome"`
	GithubLink       string   `json:"githubLink,omitempty" yaml:"github_link,omitempty"`
	DemoLink         string   `json:"demoLink,omitempty" yaml:"demo_link,omitempty"`
	ImageURL         string   `json:"imageUrl" yaml:"image_url"`
}

// Clone returns a copy that shares no slices with p
func (p Project) Clone() Project {
	if p.TechStack != nil {
		p.TechStack = append([]string(nil), p.TechStack...)
	}
	return p
}
