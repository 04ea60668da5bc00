package models

// Choice is one allowed value of an enumerated column together with its display label.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Choices is an ordered set of allowed values.
type Choices []Choice

// Values returns the raw values in declaration order.
func (c Choices) Values() []string {
	values := make([]string, len(c))
	for i, choice := range c {
		values[i] = choice.Value
	}
	return values
}

// Label returns the display label for value, or value itself when unknown.
func (c Choices) Label(value string) string {
	for _, choice := range c {
		if choice.Value == value {
			return choice.Label
		}
	}
	return value
}

// Contains reports whether value is one of the allowed values.
func (c Choices) Contains(value string) bool {
	for _, choice := range c {
		if choice.Value == value {
			return true
		}
	}
	return false
}

var SkillCategories = Choices{
	{"frontend", "Frontend"},
	{"backend", "Backend"},
	{"database", "Database"},
	{"framework", "Framework"},
	{"tool", "Tool"},
	{"other", "Other"},
}

var ProficiencyLevels = map[int]string{
	1: "Beginner",
	2: "Intermediate",
	3: "Advanced",
	4: "Expert",
}

var InquiryTypes = Choices{
	{"general", "General Inquiry"},
	{"job", "Job Opportunity"},
	{"collaboration", "Collaboration"},
	{"feedback", "Feedback"},
	{"other", "Other"},
}

var BlogCategories = Choices{
	{"tech", "Technology"},
	{"tutorial", "Tutorial"},
	{"personal", "Personal"},
	{"project", "Project Update"},
}

const (
	DefaultSkillCategory    = "other"
	DefaultProficiencyLevel = 2
	DefaultInquiryType      = "general"
	DefaultBlogCategory     = "tech"
)
