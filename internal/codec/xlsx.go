package codec

import (
	"fmt"
	"io"
	"strings"

	"portfolio/internal/domain"

	"github.com/xuri/excelize/v2"
)

// Sheet names in workbook order
const (
	SheetSkills     = "Skills"
	SheetProjects   = "Projects"
	SheetExperience = "Experience"
	SheetEducation  = "Education"
)

// XLSXExporter writes a dataset as a workbook with one sheet per collection
type XLSXExporter struct{}

// NewXLSXExporter creates a new workbook exporter
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Format returns the codec format identifier
func (x *XLSXExporter) Format() string {
	return "xlsx"
}

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

func sheetsFor(ds domain.Dataset) []sheet {
	skills := sheet{name: SheetSkills, headers: []string{"ID", "NAME", "CATEGORY", "PROFICIENCY"}}
	for _, s := range ds.Skills {
		skills.rows = append(skills.rows, []interface{}{s.ID, s.Name, string(s.Category), s.Proficiency})
	}

	projects := sheet{name: SheetProjects, headers: []string{
		"ID", "TITLE", "DESCRIPTION", "PROBLEM STATEMENT", "TECH STACK",
		"CHALLENGES", "SOLUTION", "OUTCOME", "GITHUB LINK", "DEMO LINK", "IMAGE URL",
	}}
	for _, p := range ds.Projects {
		projects.rows = append(projects.rows, []interface{}{
			p.ID, p.Title, p.Description, p.ProblemStatement, strings.Join(p.TechStack, ", "),
			p.Challenges, p.Solution, p.Outcome, p.GithubLink, p.DemoLink, p.ImageURL,
		})
	}

	experience := sheet{name: SheetExperience, headers: []string{"ID", "ROLE", "COMPANY", "DURATION", "DESCRIPTION"}}
	for _, e := range ds.Experience {
		experience.rows = append(experience.rows, []interface{}{e.ID, e.Role, e.Company, e.Duration, e.Description})
	}

	education := sheet{name: SheetEducation, headers: []string{"ID", "DEGREE", "INSTITUTION", "YEAR"}}
	for _, e := range ds.Education {
		education.rows = append(education.rows, []interface{}{e.ID, e.Degree, e.Institution, e.Year})
	}

	return []sheet{skills, projects, experience, education}
}

// Export writes the workbook to w
func (x *XLSXExporter) Export(ds *domain.Dataset, w io.Writer) error {
	if ds == nil {
		return fmt.Errorf("nil dataset")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, s := range sheetsFor(*ds) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, headerStyle); err != nil {
			return fmt.Errorf("sheet %s: %w", s.name, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]interface{}, len(s.headers))
	for i, h := range s.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return err
	}

	endCell, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.name, "A1", endCell, headerStyle); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(s.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(s.name, "A", lastCol, 20)
}
