package main

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog"

	"github.com/nextnote/nextnote-server/api"
	"github.com/nextnote/nextnote-server/auth"
	"github.com/nextnote/nextnote-server/config"
	"github.com/nextnote/nextnote-server/organize"
	"github.com/nextnote/nextnote-server/storage"
	"github.com/nextnote/nextnote-server/store"
	"github.com/nextnote/nextnote-server/ws"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	file := func(namespace string) *storage.File {
		f, err := storage.NewFile(cfg.DataDir, namespace)
		if err != nil {
			log.Fatal().Err(err).Str("namespace", namespace).Msg("open snapshot file")
		}
		return f
	}

	folders, err := store.NewFolderStore(file("folders"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("load folders")
	}
	notes, err := store.NewNoteStore(file("notes"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("load notes")
	}
	tasks, err := store.NewTaskStore(file("tasks"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("load tasks")
	}
	templates, err := store.NewTemplateStore(file("templates"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("load templates")
	}
	labels, err := store.NewLabelStore(file("labels"), log)
	if err != nil {
		log.Fatal().Err(err).Msg("load labels")
	}

	var users *auth.Registry
	if cfg.DatabaseURL != "" {
		if err := auth.Migrate(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("migrate accounts database")
		}
		pool, err := auth.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("connect accounts database")
		}
		defer pool.Close()
		users = auth.NewRegistry(pool)
	} else {
		log.Warn().Msg("no database configured, account endpoints disabled")
	}

	hub := ws.NewHub(log)
	go hub.Run()

	app := fiber.New(fiber.Config{AppName: "nextnote-server"})
	app.Use(cors.New())
	app.Use(api.RequestLogger(log))

	server := api.NewServer(api.Deps{
		Folders:   folders,
		Notes:     notes,
		Tasks:     tasks,
		Templates: templates,
		Labels:    labels,
		Organizer: organize.NewService(folders, notes),
		Users:     users,
		Hub:       hub,
		Log:       log,
	})
	server.Register(app)

	log.Info().Str("addr", cfg.Addr).Str("data_dir", cfg.DataDir).Msg("listening")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
