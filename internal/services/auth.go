package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/repos"
	"github.com/klasea/astillero-backend/internal/requestdata"
	"github.com/klasea/astillero-backend/internal/types"
	"github.com/klasea/astillero-backend/internal/utils"
)

type JWTClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type AuthService interface {
	LoginUser(ctx context.Context, username, password string) (string, string, *types.User, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (string, string, *types.User, error) {
	username = utils.NormalizeUsername(username)
	password = utils.ParseInputString(password)
	if username == "" || password == "" {
		return "", "", nil, fmt.Errorf("usuario y contrasena son obligatorios")
	}

	users, usErr := as.userRepo.GetByUsernames(ctx, nil, []string{username})
	if usErr != nil {
		return "", "", nil, fmt.Errorf("error retrieving user by username: %w", usErr)
	}
	if len(users) == 0 {
		return "", "", nil, fmt.Errorf("usuario o contrasena incorrectos")
	}

	user := users[0]
	if !user.Activo {
		return "", "", nil, fmt.Errorf("usuario deshabilitado")
	}
	if hErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); hErr != nil {
		return "", "", nil, fmt.Errorf("usuario o contrasena incorrectos")
	}

	var accessToken string
	var refreshToken string
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByUserIDs(ctx, tx, []uuid.UUID{user.ID})
		if ftErr != nil {
			return fmt.Errorf("failed to check user tokens: %w", ftErr)
		}
		// A fresh login invalidates earlier sessions for the same user.
		expired := make([]uuid.UUID, 0, len(foundTokens))
		for _, t := range foundTokens {
			expired = append(expired, t.ID)
		}
		if len(expired) > 0 {
			if dtErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, expired); dtErr != nil {
				return fmt.Errorf("failed to delete previous user tokens: %w", dtErr)
			}
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("generate access token error: %w", genErr)
		}
		accessToken = tok
		refreshToken = uuid.New().String()
		userToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, ctErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&userToken}); ctErr != nil {
			return fmt.Errorf("create user token error: %w", ctErr)
		}
		return nil
	}); err != nil {
		return "", "", nil, err
	}
	return accessToken, refreshToken, user, nil
}

// RefreshUser rotates a session: the presented refresh token is exchanged
// for a fresh access/refresh pair and the old row is deleted. The access
// token may already be expired at this point.
func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = utils.ParseInputString(refreshToken)
	if refreshToken == "" {
		return "", "", fmt.Errorf("refresh token is required")
	}

	var accessToken string
	var newRefreshTokenStr string
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByRefreshTokens(ctx, tx, []string{refreshToken})
		if ftErr != nil {
			as.log.Warn("Error fetching refresh token", "error", ftErr)
			return fmt.Errorf("error fetching refresh token: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return fmt.Errorf("refresh token not recognized")
		}
		existingToken := foundTokens[0]
		if existingToken.ExpiresAt.Before(time.Now()) {
			if dtErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dtErr != nil {
				return fmt.Errorf("refresh token expired, error deleting: %w", dtErr)
			}
			return fmt.Errorf("refresh token expired")
		}
		users, uErr := as.userRepo.GetByIDs(ctx, tx, []uuid.UUID{existingToken.UserID})
		if uErr != nil {
			return fmt.Errorf("failed to load user for refresh: %w", uErr)
		}
		if len(users) == 0 {
			return fmt.Errorf("no user found for the given refresh token")
		}
		user := users[0]
		if !user.Activo {
			return fmt.Errorf("usuario deshabilitado")
		}
		tok, genErr := as.generateAccessToken(user)
		if genErr != nil {
			return fmt.Errorf("failed to generate new access token: %w", genErr)
		}
		accessToken = tok
		newRefreshTokenStr = uuid.New().String()
		newUserToken := types.UserToken{
			ID:           uuid.New(),
			UserID:       user.ID,
			AccessToken:  tok,
			RefreshToken: newRefreshTokenStr,
			ExpiresAt:    time.Now().Add(as.refreshTTL),
		}
		if _, cErr := as.userTokenRepo.Create(ctx, tx, []*types.UserToken{&newUserToken}); cErr != nil {
			return fmt.Errorf("failed to create new user token: %w", cErr)
		}
		if dErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{existingToken.ID}); dErr != nil {
			return fmt.Errorf("failed to remove old refresh token: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefreshTokenStr, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return fmt.Errorf("no request data found in context")
	}
	if rd.TokenString == "" {
		return fmt.Errorf("token string in request data empty")
	}
	return as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, tx, []string{rd.TokenString})
		if ftErr != nil {
			return fmt.Errorf("error finding user token from token string: %w", ftErr)
		}
		if len(foundTokens) == 0 {
			return nil
		}
		if tdErr := as.userTokenRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{foundTokens[0].ID}); tdErr != nil {
			return fmt.Errorf("error deleting user token: %w", tdErr)
		}
		return nil
	})
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		Username: user.Username,
		Role:     string(user.Role),
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired JWT token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	foundTokens, ftErr := as.userTokenRepo.GetByAccessTokens(ctx, nil, []string{tokenString})
	if ftErr != nil {
		as.log.Warn("Error fetching user token by access token", "error", ftErr)
		return ctx, fmt.Errorf("failed to fetch user token by access token: %w", ftErr)
	}
	if len(foundTokens) == 0 {
		return ctx, fmt.Errorf("session not found; token revoked")
	}
	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: foundTokens[0].RefreshToken,
		UserID:       userID,
		Username:     claims.Username,
		Role:         types.Role(claims.Role),
		IsAdmin:      claims.IsAdmin,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
