package handlers

import (
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fueltrip/internal/auth"
	"fueltrip/internal/flash"
	"fueltrip/internal/maps"
	"fueltrip/internal/models"
	"fueltrip/internal/prefs"
	"fueltrip/internal/storage"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
	// SessionDuration is how long sessions last (30 days).
	SessionDuration = 30 * 24 * time.Hour
)

// Handlers holds dependencies for HTTP handlers. The mapping service is an
// interface so tests can substitute a double.
type Handlers struct {
	db           *storage.DB
	maps         maps.Service
	prefs        prefs.Store
	templateDir  string
	secureCookie bool
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *storage.DB, mapsSvc maps.Service, templateDir string, secureCookie bool) *Handlers {
	return &Handlers{db: db, maps: mapsSvc, templateDir: templateDir, secureCookie: secureCookie}
}

// currentUser restores the logged-in user from the session cookie, nil when
// anonymous or the session is invalid.
func (h *Handlers) currentUser(r *http.Request) *models.User {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	user, err := h.db.ValidateSession(cookie.Value)
	if err != nil {
		return nil
	}
	return user
}

// BasePage carries the fields every view renders: the session-restored user
// and any queued notices.
type BasePage struct {
	User    *models.User
	Notices []string
}

// base consumes pending flash notices, so call it once per rendered page.
func (h *Handlers) base(w http.ResponseWriter, r *http.Request) BasePage {
	return BasePage{User: h.currentUser(r), Notices: flash.Take(w, r)}
}

// LoginViewModel holds data for the login page.
type LoginViewModel struct {
	BasePage
	Error string
	Email string
}

// RegisterViewModel holds data for the registration page.
type RegisterViewModel struct {
	BasePage
	Error    string
	Username string
	Email    string
}

// LoginForm renders the login page.
func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r)})
}

// Login handles the login form submission. Unknown emails and wrong passwords
// surface the same notice so the form does not reveal which emails exist.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r), Error: "Invalid form submission"})
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r), Error: "Email and password are required", Email: email})
		return
	}

	user, err := h.db.GetUserByEmail(email)
	if err != nil || !auth.CheckPassword(password, user.PasswordHash) {
		h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r), Error: "Your email or password doesn't match!", Email: email})
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		log.Printf("Failed to generate session token: %v", err)
		h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r), Error: "An error occurred. Please try again."})
		return
	}

	expiresAt := time.Now().Add(SessionDuration)
	if err := h.db.CreateSession(token, user.ID, expiresAt); err != nil {
		log.Printf("Failed to create session: %v", err)
		h.render(w, "login.html", LoginViewModel{BasePage: h.base(w, r), Error: "An error occurred. Please try again."})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(SessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	flash.Set(w, []string{"You've been logged in!"})
	http.Redirect(w, r, "/", http.StatusFound)
}

// RegisterForm renders the registration page.
func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", RegisterViewModel{BasePage: h.base(w, r)})
}

// Register handles the registration form submission.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, "register.html", RegisterViewModel{BasePage: h.base(w, r), Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm")

	vm := RegisterViewModel{BasePage: h.base(w, r), Username: username, Email: email}

	switch {
	case username == "" || email == "" || password == "":
		vm.Error = "Username, email and password are required"
	case !strings.Contains(email, "@"):
		vm.Error = "Enter a valid email address"
	case password != confirm:
		vm.Error = "Passwords must match"
	}
	if vm.Error != "" {
		h.render(w, "register.html", vm)
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if _, err := h.db.CreateUser(username, email, hash); err != nil {
		// Unique email constraint lands here
		log.Printf("CreateUser error: %v", err)
		vm.Error = "An account with that email already exists"
		h.render(w, "register.html", vm)
		return
	}

	flash.Set(w, []string{"You have successfully registered"})
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout deletes the session and clears the cookie.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.db.DeleteSession(cookie.Value); err != nil {
			log.Printf("Failed to delete session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) render(w http.ResponseWriter, viewName string, data any) {
	tmpl, err := template.ParseFiles(filepath.Join(h.templateDir, "base.html"), filepath.Join(h.templateDir, viewName))
	if err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template execution error: %v", err)
	}
}
