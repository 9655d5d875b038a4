package learning

import (
	"context"

	"github.com/google/uuid"
	types "github.com/yungbote/coursemarket-backend/internal/domain"
	"github.com/yungbote/coursemarket-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type CourseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error)
	GetByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Course, error)
	ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
	CountByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) (map[uuid.UUID]int, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, status string) error
}

type courseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
	repoLog := baseLog.With("repo", "CourseRepo")
	return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	if len(courses) == 0 {
		return []*types.Course{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Omit("Instructor").Create(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	if len(courseIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("id IN ?", courseIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) GetByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) ([]*types.Course, error) {
	var results []*types.Course
	if len(instructorIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("instructor_id IN ?", instructorIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *courseRepo) ListPublished(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
	var results []*types.Course
	if err := r.conn(tx).WithContext(ctx).
		Where("status = ?", types.CourseStatusPublished).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

type instructorCount struct {
	InstructorID uuid.UUID
	N            int
}

// CountByInstructorIDs counts authored courses of any status. Instructors with
// no courses are absent from the map.
func (r *courseRepo) CountByInstructorIDs(ctx context.Context, tx *gorm.DB, instructorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(instructorIDs))
	if len(instructorIDs) == 0 {
		return out, nil
	}
	var rows []instructorCount
	if err := r.conn(tx).WithContext(ctx).
		Model(&types.Course{}).
		Select("instructor_id, COUNT(*) AS n").
		Where("instructor_id IN ?", instructorIDs).
		Group("instructor_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.InstructorID] = row.N
	}
	return out, nil
}

func (r *courseRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, courseID uuid.UUID, status string) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Course{}).
		Where("id = ?", courseID).
		Update("status", status).Error
}
