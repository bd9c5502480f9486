package repository

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// UniversityFilter holds optional, conjunctive search predicates.
type UniversityFilter struct {
	Name         string
	Country      string
	ProgramLevel string
	Department   string
	MinRanking   *int
	MaxRanking   *int
	// MinTuition and MaxTuition must both hold for the same program; a
	// university whose cheapest and priciest programs straddle the range
	// without any single program inside it does not match.
	MinTuition   *float64
	MaxTuition   *float64
}

type ScholarshipFilter struct {
	Name          string
	Provider      string
	Type          string
	Currency      string
	Nationality   string
	AcademicLevel string
	Field         string
	MinAmount     *float64
	MaxAmount     *float64
}

// EligibilityCriteria describes a student. Nil / empty values impose no constraint.
type EligibilityCriteria struct {
	Nationality   string
	AcademicLevel string
	Fields        []string
	GPA           *float64
	TOEFLScore    *float64
	IELTSScore    *float64
}

// Programs may be stored as JSON null; treat that as an empty array.
const programElements = "jsonb_array_elements(CASE WHEN jsonb_typeof(programs) = 'array' THEN programs ELSE '[]'::jsonb END)"

const fieldElements = "jsonb_array_elements_text(CASE WHEN jsonb_typeof(eligibility->'fields') = 'array' THEN eligibility->'fields' ELSE '[]'::jsonb END)"

func (f UniversityFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("name ILIKE ?", containsPattern(f.Name))
	}
	if f.Country != "" {
		db = db.Where("country ILIKE ?", containsPattern(f.Country))
	}
	if f.ProgramLevel != "" {
		db = db.Where("programs @> ?::jsonb", jsonOf([]map[string]string{{"level": f.ProgramLevel}}))
	}
	if f.Department != "" {
		db = db.Where("EXISTS (SELECT 1 FROM "+programElements+" AS p WHERE p->>'department' ILIKE ?)", containsPattern(f.Department))
	}
	if f.MinRanking != nil {
		db = db.Where("ranking >= ?", *f.MinRanking)
	}
	if f.MaxRanking != nil {
		db = db.Where("ranking <= ?", *f.MaxRanking)
	}
	if f.MinTuition != nil || f.MaxTuition != nil {
		conds := make([]string, 0, 2)
		args := make([]interface{}, 0, 2)
		if f.MinTuition != nil {
			conds = append(conds, "(p->>'tuition')::numeric >= ?")
			args = append(args, *f.MinTuition)
		}
		if f.MaxTuition != nil {
			conds = append(conds, "(p->>'tuition')::numeric <= ?")
			args = append(args, *f.MaxTuition)
		}
		db = db.Where("EXISTS (SELECT 1 FROM "+programElements+" AS p WHERE "+strings.Join(conds, " AND ")+")", args...)
	}
	return db
}

func (f ScholarshipFilter) scope(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("name ILIKE ?", containsPattern(f.Name))
	}
	if f.Provider != "" {
		db = db.Where("provider ILIKE ?", containsPattern(f.Provider))
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Currency != "" {
		db = db.Where("currency = ?", f.Currency)
	}
	if f.Nationality != "" {
		db = db.Where("eligibility->'nationalities' @> ?::jsonb", jsonOf([]string{f.Nationality}))
	}
	if f.AcademicLevel != "" {
		db = db.Where("eligibility->'academicLevels' @> ?::jsonb", jsonOf([]string{f.AcademicLevel}))
	}
	if f.Field != "" {
		db = db.Where("eligibility->'fields' @> ?::jsonb", jsonOf([]string{f.Field}))
	}
	if f.MinAmount != nil {
		db = db.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		db = db.Where("amount <= ?", *f.MaxAmount)
	}
	return db
}

func (c EligibilityCriteria) scope(db *gorm.DB) *gorm.DB {
	if c.Nationality != "" {
		db = db.Where("eligibility->'nationalities' @> ?::jsonb", jsonOf([]string{c.Nationality}))
	}
	if c.AcademicLevel != "" {
		db = db.Where("eligibility->'academicLevels' @> ?::jsonb", jsonOf([]string{c.AcademicLevel}))
	}
	if len(c.Fields) > 0 {
		db = db.Where("EXISTS (SELECT 1 FROM "+fieldElements+" AS f WHERE f IN ?)", c.Fields)
	}
	if c.GPA != nil {
		db = db.Where("(eligibility->>'minimumGPA' IS NULL OR (eligibility->>'minimumGPA')::numeric <= ?)", *c.GPA)
	}
	if c.TOEFLScore != nil {
		db = db.Where("(eligibility#>>'{languageRequirements,toefl}' IS NULL OR (eligibility#>>'{languageRequirements,toefl}')::numeric <= ?)", *c.TOEFLScore)
	}
	if c.IELTSScore != nil {
		db = db.Where("(eligibility#>>'{languageRequirements,ielts}' IS NULL OR (eligibility#>>'{languageRequirements,ielts}')::numeric <= ?)", *c.IELTSScore)
	}
	return db
}

// containsPattern builds an ILIKE pattern matching s anywhere, with LIKE
// wildcards in s escaped.
func containsPattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func jsonOf(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
