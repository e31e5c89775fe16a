// Package model contains domain models passed between layers.
package model

import "strings"

// Field names one slot of a Record.
type Field string

// The fixed field set. No other keys are ever produced by extraction.
const (
	FullName          Field = "full_name"
	Email             Field = "email"
	Phone             Field = "phone"
	Location          Field = "location"
	LinkedIn          Field = "linkedin"
	Website           Field = "website"
	Blog              Field = "blog"
	YouTube           Field = "youtube"
	Summary           Field = "summary"
	Skills            Field = "skills"
	Experience        Field = "experience"
	Education         Field = "education"
	Projects          Field = "projects"
	Certifications    Field = "certifications"
	Languages         Field = "languages"
	FieldOfWork       Field = "field_of_work"
	ExperienceLevel   Field = "experience_level"
	YearsOfExperience Field = "years_of_experience"
)

// Placeholder is shown to users in place of an empty value.
const Placeholder = "Not specified"

// Fields returns every field in a stable order.
func Fields() []Field {
	return []Field{
		FullName, Email, Phone, Location, LinkedIn, Website, Blog, YouTube, Summary,
		Skills, Experience, Education, Projects, Certifications, Languages,
		FieldOfWork, ExperienceLevel, YearsOfExperience,
	}
}

// Valid reports whether f belongs to the fixed field set.
func (f Field) Valid() bool {
	for _, k := range Fields() {
		if k == f {
			return true
		}
	}
	return false
}

// Record is the structured form of one résumé. Every value is text; absence
// is the empty string.
type Record struct {
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Location          string `json:"location"`
	LinkedIn          string `json:"linkedin"`
	Website           string `json:"website"`
	Blog              string `json:"blog"`
	YouTube           string `json:"youtube"`
	Summary           string `json:"summary"`
	Skills            string `json:"skills"`
	Experience        string `json:"experience"`
	Education         string `json:"education"`
	Projects          string `json:"projects"`
	Certifications    string `json:"certifications"`
	Languages         string `json:"languages"`
	FieldOfWork       string `json:"field_of_work"`
	ExperienceLevel   string `json:"experience_level"`
	YearsOfExperience string `json:"years_of_experience"`
}

func (r *Record) slot(f Field) *string {
	switch f {
	case FullName:
		return &r.FullName
	case Email:
		return &r.Email
	case Phone:
		return &r.Phone
	case Location:
		return &r.Location
	case LinkedIn:
		return &r.LinkedIn
	case Website:
		return &r.Website
	case Blog:
		return &r.Blog
	case YouTube:
		return &r.YouTube
	case Summary:
		return &r.Summary
	case Skills:
		return &r.Skills
	case Experience:
		return &r.Experience
	case Education:
		return &r.Education
	case Projects:
		return &r.Projects
	case Certifications:
		return &r.Certifications
	case Languages:
		return &r.Languages
	case FieldOfWork:
		return &r.FieldOfWork
	case ExperienceLevel:
		return &r.ExperienceLevel
	case YearsOfExperience:
		return &r.YearsOfExperience
	}
	return nil
}

// Get returns the value of f, or "" for an unknown field.
func (r Record) Get(f Field) string {
	if p := r.slot(f); p != nil {
		return *p
	}
	return ""
}

// Set stores v under f. Unknown fields are ignored.
func (r *Record) Set(f Field, v string) {
	if p := r.slot(f); p != nil {
		*p = v
	}
}

// Map returns the record keyed by field name.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(Fields()))
	for _, f := range Fields() {
		m[string(f)] = r.Get(f)
	}
	return m
}

// FromMap builds a Record from a name-keyed map, ignoring unknown keys.
func FromMap(m map[string]string) Record {
	var r Record
	for k, v := range m {
		r.Set(Field(k), v)
	}
	return r
}

// Empty returns the fields whose value is blank.
func (r Record) Empty() []Field {
	var out []Field
	for _, f := range Fields() {
		if strings.TrimSpace(r.Get(f)) == "" {
			out = append(out, f)
		}
	}
	return out
}

// WithPlaceholders returns a copy where blank values read "Not specified".
func (r Record) WithPlaceholders() Record {
	out := r
	for _, f := range r.Empty() {
		out.Set(f, Placeholder)
	}
	return out
}

// WithoutPlaceholders reverses WithPlaceholders.
func (r Record) WithoutPlaceholders() Record {
	out := r
	for _, f := range Fields() {
		if out.Get(f) == Placeholder {
			out.Set(f, "")
		}
	}
	return out
}
