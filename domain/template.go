package domain

import "time"

type TemplateCategory string

const (
	CategoryMeeting  TemplateCategory = "meeting"
	CategoryPlanning TemplateCategory = "planning"
	CategoryJournal  TemplateCategory = "journal"
	CategoryProject  TemplateCategory = "project"
	CategoryPersonal TemplateCategory = "personal"
)

func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryMeeting, CategoryPlanning, CategoryJournal, CategoryProject, CategoryPersonal:
		return true
	}
	return false
}

// Template is a reusable content blueprint. Placeholder tokens inside
// Content ({{date}}, {{attendees}}, ...) are not substituted when the
// template is used; the content is copied into the new note verbatim.
type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Icon        string           `json:"icon"`
	Content     string           `json:"content"`
	Tags        []string         `json:"tags"`
	IsPublic    bool             `json:"is_public"`
	BuiltIn     bool             `json:"built_in"`
	UsageCount  int              `json:"usage_count"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type TemplateDraft struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    TemplateCategory `json:"category"`
	Icon        string           `json:"icon"`
	Content     string           `json:"content"`
	Tags        []string         `json:"tags"`
	IsPublic    bool             `json:"is_public"`
}

type TemplateUpdate struct {
	Name        *string
	Description *string
	Category    *TemplateCategory
	Icon        *string
	Content     *string
	Tags        *[]string
	IsPublic    *bool
}
