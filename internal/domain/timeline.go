package domain

// Experience is a work history entry
type Experience struct {
	ID          int64  `json:"id" yaml:"-"`
	Role        string `json:"role" yaml:"role"`
	Company     string `json:"company" yaml:"company"`
	Duration    string `json:"duration" yaml:"duration"`
	Description string `json:"description" yaml:"description"`
}

// Education is a degree or certification entry
type Education struct {
	ID          int64  `json:"id" yaml:"-"`
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Year        string `json:"year" yaml:"year"`
}
