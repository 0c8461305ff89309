package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/sse"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

// Usernames double as login identity; the synthetic email keeps the perfil
// table compatible with tooling that expects one.
const syntheticEmailDomain = "astillero.local"

type CreateUserInput struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     types.Role `json:"role"`
	IsAdmin  bool       `json:"is_admin"`
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.User, error)
	ListUsers(ctx context.Context) ([]*types.User, error)
	UpdateRole(ctx context.Context, userID uuid.UUID, role types.Role, isAdmin bool) error
	SetActivo(ctx context.Context, userID uuid.UUID, activo bool) error
	UploadAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error)
	EnsureBootstrapAdmin(ctx context.Context) error
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
	hub           *sse.Hub
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService, hub *sse.Hub) UserService {
	return &userService{
		db:            db,
		log:           log.With("service", "UserService"),
		userRepo:      userRepo,
		avatarService: avatarService,
		hub:           hub,
	}
}

func (us *userService) CreateUser(ctx context.Context, input CreateUserInput) (*types.User, error) {
	username := utils.NormalizeUsername(input.Username)
	password := utils.ParseInputString(input.Password)
	if username == "" {
		return nil, fmt.Errorf("el nombre de usuario es obligatorio")
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("la contrasena debe tener al menos 6 caracteres")
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("rol invalido: %q", input.Role)
	}

	exists, exErr := us.userRepo.UsernameExists(ctx, nil, username)
	if exErr != nil {
		return nil, fmt.Errorf("failed to check username: %w", exErr)
	}
	if exists {
		return nil, fmt.Errorf("el usuario %q ya existe", username)
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if hErr != nil {
		return nil, fmt.Errorf("failed to hash password: %w", hErr)
	}

	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Email:    fmt.Sprintf("%s@%s", username, syntheticEmailDomain),
		Password: string(hashed),
		Role:     input.Role,
		IsAdmin:  input.IsAdmin,
		Activo:   true,
	}

	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, cErr := us.userRepo.Create(ctx, tx, []*types.User{user}); cErr != nil {
			return fmt.Errorf("failed to create user: %w", cErr)
		}
		if us.avatarService != nil {
			if avErr := us.avatarService.CreateAndUploadUserAvatar(ctx, tx, user); avErr != nil {
				us.log.Warn("Failed to generate avatar for new user (ignored)", "username", username, "error", avErr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	us.hub.Broadcast(sse.Message{Channel: "usuarios", Event: sse.EventUsuariosChanged})
	us.log.Info("User created", "username", username, "role", user.Role)
	return user, nil
}

func (us *userService) GetByID(ctx context.Context, id uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("usuario no encontrado")
	}
	return users[0], nil
}

func (us *userService) ListUsers(ctx context.Context) ([]*types.User, error) {
	return us.userRepo.List(ctx, nil)
}

func (us *userService) UpdateRole(ctx context.Context, userID uuid.UUID, role types.Role, isAdmin bool) error {
	if !role.Valid() {
		return fmt.Errorf("rol invalido: %q", role)
	}
	if err := us.userRepo.UpdateRole(ctx, nil, userID, role, isAdmin); err != nil {
		return err
	}
	us.hub.Broadcast(sse.Message{Channel: "usuarios", Event: sse.EventUsuariosChanged})
	return nil
}

func (us *userService) SetActivo(ctx context.Context, userID uuid.UUID, activo bool) error {
	if err := us.userRepo.SetActivo(ctx, nil, userID, activo); err != nil {
		return err
	}
	us.hub.Broadcast(sse.Message{Channel: "usuarios", Event: sse.EventUsuariosChanged})
	return nil
}

func (us *userService) UploadAvatar(ctx context.Context, userID uuid.UUID, raw []byte) (*types.User, error) {
	if us.avatarService == nil {
		return nil, fmt.Errorf("avatar service not configured")
	}
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, nil, user, raw); err != nil {
		return nil, err
	}
	us.hub.Broadcast(sse.Message{Channel: "usuarios", Event: sse.EventUsuariosChanged})
	return user, nil
}

// EnsureBootstrapAdmin creates the first admin account from env vars when the
// perfil table is empty, so a fresh deployment is reachable.
func (us *userService) EnsureBootstrapAdmin(ctx context.Context) error {
	count, err := us.userRepo.Count(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}
	username := utils.NormalizeUsername(os.Getenv("BOOTSTRAP_ADMIN_USERNAME"))
	password := strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"))
	if username == "" || password == "" {
		us.log.Warn("User table empty and BOOTSTRAP_ADMIN_USERNAME/PASSWORD not set; no admin created")
		return nil
	}
	_, err = us.CreateUser(ctx, CreateUserInput{
		Username: username,
		Password: password,
		Role:     types.RoleAdmin,
		IsAdmin:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	us.log.Info("Bootstrap admin created", "username", username)
	return nil
}
