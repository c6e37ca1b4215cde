package devserver

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth"
)

var (
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,50}$`)
)

// Registration validation messages.
const (
	msgMissingFields   = "Missing required fields"
	msgInvalidEmail    = "Invalid email format"
	msgInvalidUsername = "Invalid username format. Use 3-50 alphanumeric characters, underscores, or dashes only"
	msgPasswordShort   = "Password must be at least 8 characters long"
	msgPasswordLetter  = "Password must contain at least one letter"
	msgPasswordNumber  = "Password must contain at least one number"
	msgDuplicateUser   = "Username or email already exists"
	msgBadCredentials  = "Invalid username or password"
)

type credentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// validatePassword returns the first rule the password breaks, or "".
func validatePassword(password string) string {
	if len(password) < 8 {
		return msgPasswordShort
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r < unicode.MaxASCII && unicode.IsLetter(r) }) {
		return msgPasswordLetter
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		return msgPasswordNumber
	}
	return ""
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !emailPattern.MatchString(email) {
		writeError(w, http.StatusBadRequest, msgInvalidEmail)
		return
	}
	if !usernamePattern.MatchString(username) {
		writeError(w, http.StatusBadRequest, msgInvalidUsername)
		return
	}
	if msg := validatePassword(req.Password); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		logFrom(r).Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error during registration")
		return
	}

	u, err := s.store.createUser(username, email, hash, s.now())
	if errors.Is(err, errDuplicateUser) {
		writeError(w, http.StatusConflict, msgDuplicateUser)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error during registration")
		return
	}

	s.issueToken(w, r, http.StatusCreated, "User registered successfully", u)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	u, ok := s.store.userByName(strings.TrimSpace(req.Username))
	if !ok {
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	s.issueToken(w, r, http.StatusOK, "Login successful", u)
}

func (s *Server) issueToken(w http.ResponseWriter, r *http.Request, status int, message string, u *user) {
	token, err := auth.Sign(s.secret, u.ID, u.Username, s.now(), s.ttl)
	if err != nil {
		logFrom(r).Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, status, api.AuthResult{
		Message: message,
		User: api.User{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
		},
		Token: token,
	})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	c, _ := callerFrom(r)
	u, ok := s.store.userByID(c.UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": api.User{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		},
	})
}
