package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fueltrip/internal/auth"
	"fueltrip/internal/handlers"
	"fueltrip/internal/maps"
	"fueltrip/internal/storage"

	"github.com/joho/godotenv"
)

const defaultMapsBaseURL = "https://maps.googleapis.com"

// main is the application composition root. Configuration comes from the
// environment; the maps client and store are wired into handlers here so
// nothing downstream touches globals.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := getEnv("PORT", "8080")
	dbPath := getEnv("DB_PATH", "fueltrip.db")
	templateDir := getEnv("TEMPLATE_DIR", "web/templates")
	staticDir := getEnv("STATIC_DIR", "web/static")
	secureCookie := getEnv("SECURE_COOKIE", "false") == "true"
	mapsBaseURL := getEnv("MAPS_BASE_URL", defaultMapsBaseURL)

	mapsKey := os.Getenv("MAPS_API_KEY")
	if strings.TrimSpace(mapsKey) == "" {
		log.Fatal("MAPS_API_KEY is required")
	}

	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := seedAdminUser(db); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	if err := db.CleanExpiredSessions(); err != nil {
		log.Printf("Failed to clean expired sessions: %v", err)
	}

	client, err := maps.NewClient(mapsKey, mapsBaseURL)
	if err != nil {
		log.Fatalf("Failed to create maps client: %v", err)
	}

	h := handlers.NewHandlers(db, client, templateDir, secureCookie)
	mux := setupRouter(h, staticDir)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handlers.Logging(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func setupRouter(h *handlers.Handlers, staticDir string) *http.ServeMux {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /register", h.RegisterForm)
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("GET /login", h.LoginForm)
	mux.HandleFunc("POST /login", h.Login)
	mux.HandleFunc("GET /logout", h.Logout)
	mux.HandleFunc("GET /route", h.Route)
	mux.HandleFunc("POST /save", h.Save)
	mux.HandleFunc("GET /savedtrips", h.SavedTrips)

	return mux
}

// seedAdminUser creates a first account from the environment when the user
// table is empty, so a fresh deployment has a way to log in.
func seedAdminUser(db *storage.DB) error {
	username := os.Getenv("ADMIN_USER")
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || email == "" || password == "" {
		return nil
	}

	count, err := db.UserCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user, err := db.CreateUser(username, email, hash)
	if err != nil {
		return err
	}
	log.Printf("Seeded admin user %s (id=%d)", user.Username, user.ID)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
