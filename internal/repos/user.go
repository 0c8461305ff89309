package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/klasea/astillero-backend/internal/logger"
	"github.com/klasea/astillero-backend/internal/types"
)

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error)
	UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.User, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role, isAdmin bool) error
	SetActivo(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activo bool) error
	UpdateAvatarFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bucketKey, url string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByUsernames(ctx context.Context, tx *gorm.DB, usernames []string) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if len(usernames) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("username IN ?", usernames).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UsernameExists(ctx context.Context, tx *gorm.DB, username string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var results []*types.User
	if err := transaction.WithContext(ctx).
		Order("username asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	var count int64
	if err := transaction.WithContext(ctx).Model(&types.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (ur *userRepo) UpdateRole(ctx context.Context, tx *gorm.DB, userID uuid.UUID, role types.Role, isAdmin bool) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"role": role, "is_admin": isAdmin}).Error
}

func (ur *userRepo) SetActivo(ctx context.Context, tx *gorm.DB, userID uuid.UUID, activo bool) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Update("activo", activo).Error
}

func (ur *userRepo) UpdateAvatarFields(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bucketKey, url string) error {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}
	return transaction.WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{"avatar_bucket_key": bucketKey, "avatar_url": url}).Error
}
