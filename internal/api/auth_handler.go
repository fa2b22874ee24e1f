package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/harperlib/bookshelf-api/internal/api/shared"
	"github.com/harperlib/bookshelf-api/internal/domain"
	"github.com/harperlib/bookshelf-api/internal/platform/logger"
	"github.com/harperlib/bookshelf-api/internal/service/auth"
	"github.com/harperlib/bookshelf-api/internal/store"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	userStore        store.UserStore
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	passwordVerifier auth.PasswordVerifier
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	jwtService auth.JWTService,
	passwordHasher auth.PasswordHasher,
	passwordVerifier auth.PasswordVerifier,
) *AuthHandler {
	return &AuthHandler{
		userStore:        userStore,
		jwtService:       jwtService,
		passwordHasher:   passwordHasher,
		passwordVerifier: passwordVerifier,
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithDetailedError(w, r, http.StatusBadRequest,
			"Validation Error", "username and password are required")
		return
	}

	log.Info("register request received", slog.String("username", req.Username))

	// NewUser normalizes the username and checks the username/password
	// rules; each failure carries its own rule message.
	user, err := domain.NewUser(req.Username, req.Password)
	if err != nil {
		shared.RespondWithDetailedError(w, r, http.StatusBadRequest,
			"Validation Error", err.Error())
		return
	}

	// Explicit credential step: hash before the repository ever sees the
	// user. No plaintext survives past this call.
	if err := auth.PrepareCredentials(user, h.passwordHasher); err != nil {
		log.Error("failed to prepare credentials", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error registering user")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Warn("user already exists", slog.String("username", user.Username))
			shared.RespondWithError(w, r, http.StatusBadRequest, "User already exists")
			return
		}
		log.Error("failed to create user", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error registering user")
		return
	}

	log.Info("user registered successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		Message: "User registered successfully",
		User: RegisteredUser{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Login handles POST /api/auth/login. Unknown users and wrong passwords get
// the same response so the two cannot be told apart.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid username or password")
		return
	}

	log.Info("login request received", slog.String("username", req.Username))

	user, err := h.userStore.GetByUsername(r.Context(), domain.NormalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn("invalid login attempt", slog.String("username", req.Username))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid username or password")
			return
		}
		log.Error("failed to get user by username", "error", err)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error logging in")
		return
	}

	if err := h.passwordVerifier.Compare(user.HashedPassword, req.Password); err != nil {
		log.Warn("invalid password attempt", slog.String("username", req.Username))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid username or password")
		return
	}

	token, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to generate token", "error", err, "user_id", user.ID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Error logging in")
		return
	}

	log.Info("user logged in successfully",
		slog.String("username", user.Username),
		slog.String("user_id", user.ID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{Token: token})
}
