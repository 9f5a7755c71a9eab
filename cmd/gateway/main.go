package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	api "github.com/persona-lab/archetype-engine/internal/api/http"
	"github.com/persona-lab/archetype-engine/internal/archetype"
	"github.com/persona-lab/archetype-engine/internal/auth"
	authmw "github.com/persona-lab/archetype-engine/internal/auth/middleware"
	"github.com/persona-lab/archetype-engine/internal/config"
	"github.com/persona-lab/archetype-engine/internal/db"
	"github.com/persona-lab/archetype-engine/internal/quiz"
	"github.com/persona-lab/archetype-engine/internal/rbac"
	syncx "github.com/persona-lab/archetype-engine/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	events := syncx.NewEventRepo(dbh, cfg.SiteID)
	store := quiz.NewSQLStore(dbh, cfg.DBDriver, events)

	// --- Archetype catalogue (builtin edition plus optional custom one) ---
	if cfg.CataloguePath != "" {
		cat, err := archetype.LoadFile(cfg.CataloguePath)
		if err != nil {
			log.Fatalf("catalogue load failed: %v", err)
		}
		archetype.Register(cat)
		log.Printf("registered catalogue edition %s (%d archetypes)", cat.Edition(), cat.Len())
	}

	// --- Seed quiz pack ---
	if cfg.QuizDir != "" {
		quizzes, err := quiz.LoadDir(cfg.QuizDir)
		if err != nil {
			log.Fatalf("quiz pack load failed: %v", err)
		}
		for _, q := range quizzes {
			if err := store.PutQuiz(q); err != nil {
				log.Fatalf("seed quiz %s: %v", q.ID, err)
			}
		}
		log.Printf("seeded %d quizzes from %s", len(quizzes), cfg.QuizDir)
	}

	// --- Auth (local JWT for offline/dev) ---
	secret := getenvOr("AUTH_HMAC_SECRET", "supersecret-dev-key")
	authSvc := authmw.NewAuthService(secret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	corsOrigins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		corsOrigins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh, cfg))
	}
	if cfg.EnableGuestAuth {
		r.Post("/auth/guest", auth.GuestLoginHandler(authSvc, dbh, cfg))
	}

	// Protected API (JWT → identity in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.Use(authmw.AttachRoleFromDB(dbh, cfg.Mode == config.ModeOffline))

		// Authoring
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.UploadQuizHandler(store))
		pr.With(rbac.Require("quiz:delete")).
			Delete("/quizzes/{quizID}", api.DeleteQuizHandler(store))
		pr.With(rbac.Require("quiz:validate")).
			Post("/quizzes/validate", api.ValidateQuizHandler())

		// Taking
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes", api.ListQuizzesHandler(store))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", api.GetQuizHandler(store))
		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", api.CreateAttemptHandler(store))
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/responses", api.SaveResponsesHandler(store))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/submit", api.SubmitAttemptHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts/{attemptID}", api.GetAttemptHandler(store))
		pr.With(rbac.RequireAny("attempt:view-own", "attempt:view-all")).
			Get("/attempts", api.ListAttemptsHandler(store))

		// Stateless scoring
		pr.With(rbac.Require("quiz:score")).
			Post("/score", api.ScoreHandler())
		pr.With(rbac.Require("quiz:score")).
			Post("/quizzes/{quizID}/score", api.ScoreQuizHandler(store))
		pr.With(rbac.Require("quiz:score")).
			Post("/quizzes/{quizID}/validate-responses", api.ValidateResponsesHandler(store))

		// Catalogue
		pr.With(rbac.Require("catalogue:view")).
			Get("/catalogue", api.ListEditionsHandler())
		pr.With(rbac.Require("catalogue:view")).
			Get("/catalogue/{edition}", api.GetEditionHandler())

		// Users
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
		pr.With(rbac.Require("users:update_role")).
			Patch("/admin/users/{userID}", api.AdminUpdateUserRoleHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
