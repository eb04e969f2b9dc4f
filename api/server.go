// Package api exposes the stores over HTTP as a JSON API.
package api

import (
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/auth"
	"github.com/nextnote/nextnote-server/domain"
	"github.com/nextnote/nextnote-server/organize"
	"github.com/nextnote/nextnote-server/store"
	"github.com/nextnote/nextnote-server/ws"
)

type Server struct {
	folders   *store.FolderStore
	notes     *store.NoteStore
	tasks     *store.TaskStore
	templates *store.TemplateStore
	labels    *store.LabelStore
	organizer *organize.Service
	users     *auth.Registry // nil when no accounts database is configured
	hub       *ws.Hub
	log       zerolog.Logger
	now       func() time.Time
}

type Deps struct {
	Folders   *store.FolderStore
	Notes     *store.NoteStore
	Tasks     *store.TaskStore
	Templates *store.TemplateStore
	Labels    *store.LabelStore
	Organizer *organize.Service
	Users     *auth.Registry
	Hub       *ws.Hub
	Log       zerolog.Logger
}

func NewServer(deps Deps) *Server {
	return &Server{
		folders:   deps.Folders,
		notes:     deps.Notes,
		tasks:     deps.Tasks,
		templates: deps.Templates,
		labels:    deps.Labels,
		organizer: deps.Organizer,
		users:     deps.Users,
		hub:       deps.Hub,
		log:       deps.Log,
		now:       time.Now,
	}
}

func (s *Server) Register(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/signup", s.handleSignup)
	api.Post("/login", s.handleLogin)

	api.Get("/notes", s.handleListNotes)
	api.Post("/notes", s.handleCreateNote)
	api.Get("/notes/starred", s.handleStarredNotes)
	api.Get("/notes/recent", s.handleRecentNotes)
	api.Get("/notes/search", s.handleSearchNotes)
	api.Get("/notes/:id", s.handleGetNote)
	api.Put("/notes/:id", s.handleUpdateNote)
	api.Delete("/notes/:id", s.handleDeleteNote)
	api.Post("/notes/:id/move", s.handleMoveNote)

	api.Get("/folders", s.handleListFolders)
	api.Post("/folders", s.handleCreateFolder)
	api.Get("/folders/tree", s.handleFolderTree)
	api.Get("/folders/destinations", s.handleDestinations)
	api.Post("/folders/destinations", s.handleCreateDestination)
	api.Get("/folders/slug/:slug", s.handleFolderBySlug)
	api.Get("/folders/:id", s.handleGetFolder)
	api.Put("/folders/:id", s.handleUpdateFolder)
	api.Delete("/folders/:id", s.handleDeleteFolder)
	api.Get("/folders/:id/path", s.handleFolderPath)
	api.Get("/folders/:id/notes", s.handleFolderNotes)

	api.Get("/tasks", s.handleListTasks)
	api.Post("/tasks", s.handleCreateTask)
	api.Get("/tasks/archive", s.handleTaskArchive)
	api.Get("/tasks/:id", s.handleGetTask)
	api.Put("/tasks/:id", s.handleUpdateTask)
	api.Delete("/tasks/:id", s.handleDeleteTask)

	api.Get("/templates", s.handleListTemplates)
	api.Post("/templates", s.handleCreateTemplate)
	api.Get("/templates/:id", s.handleGetTemplate)
	api.Put("/templates/:id", s.handleUpdateTemplate)
	api.Delete("/templates/:id", s.handleDeleteTemplate)
	api.Post("/templates/:id/use", s.handleUseTemplate)

	api.Get("/labels", s.handleListLabels)
	api.Post("/labels", s.handleCreateLabel)
	api.Put("/labels/:id", s.handleUpdateLabel)
	api.Delete("/labels/:id", s.handleDeleteLabel)

	api.Get("/dashboard", s.handleDashboard)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		s.hub.Register(conn)
		s.hub.Listen(conn)
	}))
}

func (s *Server) fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// parseRef reads an optional nullable reference field out of a raw
// JSON value: absent means "leave it alone", explicit null means "set
// to the root/unfiled bucket".
func parseRef(raw json.RawMessage) (*domain.ParentRef, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if string(raw) == "null" {
		return &domain.ParentRef{}, nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, err
	}
	return &domain.ParentRef{ID: &id}, nil
}
