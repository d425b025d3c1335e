package leave

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Filter narrows the listing; nil/zero fields are ignored.
type Filter struct {
	EmployeeID uint
	Status     string
	From       *time.Time
	To         *time.Time
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uint) (*LeaveRequest, error)
	FindAll(ctx context.Context, f Filter) ([]LeaveRequest, error)
	MarkReviewed(ctx context.Context, id uint, status string, reviewerID uint, reviewedAt time.Time, comment *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on the given transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		Preload("Employee").
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAll(ctx context.Context, f Filter) ([]LeaveRequest, error) {
	db := r.db.WithContext(ctx).
		Preload("Employee").
		Order("applied_at DESC")

	if f.EmployeeID != 0 {
		db = db.Where("employee_id = ?", f.EmployeeID)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.From != nil {
		db = db.Where("end_date >= ?", *f.From)
	}
	if f.To != nil {
		db = db.Where("start_date <= ?", *f.To)
	}

	var leaves []LeaveRequest
	err := db.Find(&leaves).Error
	return leaves, err
}

// MarkReviewed performs the Pending -> terminal transition. The status guard
// in the WHERE clause serializes concurrent reviews; a lost race reports
// zero rows affected and returns false. A nil comment stores NULL.
func (r *repository) MarkReviewed(ctx context.Context, id uint, status string, reviewerID uint, reviewedAt time.Time, comment *string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"reviewed_by":    reviewerID,
			"reviewed_at":    reviewedAt,
			"review_comment": comment,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
