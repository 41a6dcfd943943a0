package domain

// Dataset holds the four read-only collections in declaration order
type Dataset struct {
	Skills     []Skill      `json:"skills" yaml:"skills"`
	Projects   []Project    `json:"projects" yaml:"projects"`
	Experience []Experience `json:"experience" yaml:"experience"`
	Education  []Education  `json:"education" yaml:"education"`
}

// Counts summarizes the number of records per collection
type Counts struct {
	Skills     int `json:"skills"`
	Projects   int `json:"projects"`
	Experience int `json:"experience"`
	Education  int `json:"education"`
}

// Counts returns the record counts of the dataset
func (d *Dataset) Counts() Counts {
	if d == nil {
		return Counts{}
	}
	return Counts{
		Skills:     len(d.Skills),
		Projects:   len(d.Projects),
		Experience: len(d.Experience),
		Education:  len(d.Education),
	}
}

// Normalized returns a shallow copy whose nil collections are empty
func (d Dataset) Normalized() Dataset {
	if d.Skills == nil {
		d.Skills = []Skill{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Experience == nil {
		d.Experience = []Experience{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	return d
}
