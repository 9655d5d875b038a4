package user

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListFilter narrows ListByRole. Zero value lists every user with the role.
type ListFilter struct {
	OnboardedOnly      bool
	PaymentEnabledOnly bool
}

type UserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error)
	ListByRole(ctx context.Context, tx *gorm.DB, role string, filter ListFilter) ([]*types.User, error)
	UpdateMatchingProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields MatchingProfile) error
}

// MatchingProfile holds the columns the recommendation engine reads.
type MatchingProfile struct {
	Interests     datatypes.JSON
	Skills        datatypes.JSON
	LearningGoals string
	Bio           string
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return ur.db
}

func (ur *userRepo) Create(ctx context.Context, tx *gorm.DB, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	if err := ur.conn(tx).WithContext(ctx).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := ur.conn(tx).WithContext(ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByEmails(ctx context.Context, tx *gorm.DB, userEmails []string) ([]*types.User, error) {
	var results []*types.User
	if len(userEmails) == 0 {
		return results, nil
	}
	if err := ur.conn(tx).WithContext(ctx).
		Where("email IN ?", userEmails).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) ListByRole(ctx context.Context, tx *gorm.DB, role string, filter ListFilter) ([]*types.User, error) {
	q := ur.conn(tx).WithContext(ctx).Where("role = ?", role)
	if filter.OnboardedOnly {
		q = q.Where("onboarding_completed = ?", true)
	}
	if filter.PaymentEnabledOnly {
		q = q.Where("payment_enabled = ?", true)
	}
	var results []*types.User
	if err := q.Order("created_at DESC").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateMatchingProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, fields MatchingProfile) error {
	return ur.conn(tx).WithContext(ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"interests":      fields.Interests,
			"skills":         fields.Skills,
			"learning_goals": fields.LearningGoals,
			"bio":            fields.Bio,
		}).Error
}
