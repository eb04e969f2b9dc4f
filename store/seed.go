package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/nextnote/nextnote-server/domain"
)

// builtInTemplates returns the blueprints shipped with every fresh
// install. Placeholder tokens are part of the content and survive into
// notes created from a template.
func builtInTemplates() []domain.Template {
	now := time.Now()
	mk := func(name, description string, category domain.TemplateCategory, icon, content string, tags ...string) domain.Template {
		return domain.Template{
			ID:          uuid.NewString(),
			Name:        name,
			Description: description,
			Category:    category,
			Icon:        icon,
			Content:     content,
			Tags:        tags,
			IsPublic:    true,
			BuiltIn:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
	}

	return []domain.Template{
		mk("Meeting Notes", "Agenda, attendees and action items for a meeting",
			domain.CategoryMeeting, "📝",
			"<h1>Meeting Notes</h1><p><strong>Date:</strong> {{date}}</p><p><strong>Attendees:</strong> {{attendees}}</p><h2>Agenda</h2><ul><li></li></ul><h2>Decisions</h2><ul><li></li></ul><h2>Action Items</h2><ul><li>[ ] </li></ul>",
			"meeting", "work"),
		mk("Daily Journal", "A dated entry with prompts for reflection",
			domain.CategoryJournal, "📔",
			"<h1>{{date}}</h1><h2>How am I feeling?</h2><p></p><h2>Three things I'm grateful for</h2><ul><li></li><li></li><li></li></ul><h2>Today's focus</h2><p></p>",
			"journal", "daily"),
		mk("Project Plan", "Goals, milestones and risks for a new project",
			domain.CategoryProject, "🗂️",
			"<h1>{{project_name}}</h1><h2>Goal</h2><p></p><h2>Milestones</h2><ul><li>[ ] </li></ul><h2>Risks</h2><ul><li></li></ul><h2>Stakeholders</h2><p></p>",
			"project", "planning"),
		mk("Weekly Review", "Look back at the week and set up the next one",
			domain.CategoryPlanning, "🔁",
			"<h1>Week of {{week}}</h1><h2>What went well</h2><ul><li></li></ul><h2>What didn't</h2><ul><li></li></ul><h2>Next week</h2><ul><li>[ ] </li></ul>",
			"review", "planning"),
		mk("Book Notes", "Capture takeaways while reading",
			domain.CategoryPersonal, "📚",
			"<h1>{{book_title}}</h1><p><strong>Author:</strong> {{author}}</p><h2>Summary</h2><p></p><h2>Key ideas</h2><ul><li></li></ul><h2>Quotes</h2><blockquote></blockquote>",
			"reading", "personal"),
	}
}
