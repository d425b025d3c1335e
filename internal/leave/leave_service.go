package leave

import (
	"context"
	"errors"
	"strconv"
	"time"

	leaveerrors "github.com/DannielJohn120/Employee-Leave-Management-Project/internal/leave/errors"
	"github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user"
	usererrors "github.com/DannielJohn120/Employee-Leave-Management-Project/internal/user/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Service interface {
	Submit(ctx context.Context, actorID, role string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, actorID, role string, filter LeaveFilterRequest) ([]LeaveResponse, error)
	GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error)
	Approve(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error)
	Reject(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, users: users, logger: l}
}

func (s *service) Submit(ctx context.Context, actorID, role string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actor, err := parseID(actorID, leaveerrors.ErrInvalidActorID)
	if err != nil {
		return LeaveResponse{}, err
	}

	employeeID := req.EmployeeID
	if employeeID == 0 {
		employeeID = actor
	}
	if role != user.RoleHR && employeeID != actor {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	if startDate.After(endDate) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	span := endDate.Sub(startDate).Hours()/24 + 1
	days := req.Days
	if days == 0 {
		days = span
	}
	if days < 0 || days > span {
		return LeaveResponse{}, leaveerrors.ErrInvalidDays
	}

	var l *LeaveRequest
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		uqtx := s.users.WithTx(tx)

		emp, err := uqtx.FindByID(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrEmployeeNotFound
			}
			s.logger.Error("submit leave employee lookup failed", zap.Error(err))
			return err
		}

		if days > emp.LeaveBalance {
			s.logger.Warn("submit leave insufficient balance",
				zap.Uint("employee_id", employeeID),
				zap.Float64("days", days),
				zap.Float64("balance", emp.LeaveBalance),
			)
			return leaveerrors.ErrInsufficientBalance
		}

		l = &LeaveRequest{
			EmployeeID: employeeID,
			StartDate:  startDate,
			EndDate:    endDate,
			Days:       days,
			LeaveType:  req.LeaveType,
			Reason:     req.Reason,
			Status:     StatusPending,
			AppliedAt:  time.Now().UTC(),
		}

		if err := qtx.Create(ctx, l); err != nil {
			s.logger.Error("submit leave persist failed", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.Uint("leave_id", l.ID),
		zap.Uint("employee_id", employeeID),
		zap.Float64("days", days),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, actorID, role string, filter LeaveFilterRequest) ([]LeaveResponse, error) {
	actor, err := parseID(actorID, leaveerrors.ErrInvalidActorID)
	if err != nil {
		return nil, err
	}

	f := Filter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	}
	// Employees only ever see their own requests
	if role != user.RoleHR {
		f.EmployeeID = actor
	}

	if filter.From != "" {
		from, err := parseDate(filter.From)
		if err != nil {
			return nil, err
		}
		f.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To)
		if err != nil {
			return nil, err
		}
		f.To = &to
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return nil, leaveerrors.ErrInvalidDateRange
	}

	leaves, err := s.repo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, actorID, role, id string) (LeaveResponse, error) {
	actor, err := parseID(actorID, leaveerrors.ErrInvalidActorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	leaveID, err := parseID(id, leaveerrors.ErrInvalidLeaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if role != user.RoleHR && l.EmployeeID != actor {
		return LeaveResponse{}, leaveerrors.ErrNotRequestOwner
	}

	return mapToResponse(*l), nil
}

func (s *service) Approve(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusApproved, comment)
}

func (s *service) Reject(ctx context.Context, reviewerID, id, comment string) (LeaveResponse, error) {
	return s.review(ctx, reviewerID, id, StatusRejected, comment)
}

func (s *service) review(ctx context.Context, reviewerID, id, targetStatus, comment string) (LeaveResponse, error) {
	s.logger.Debug("review leave requested",
		zap.String("leave_id", id),
		zap.String("reviewer_id", reviewerID),
		zap.String("target_status", targetStatus),
	)

	reviewer, err := parseID(reviewerID, leaveerrors.ErrInvalidActorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	leaveID, err := parseID(id, leaveerrors.ErrInvalidLeaveID)
	if err != nil {
		return LeaveResponse{}, err
	}

	var commentPtr *string
	if comment != "" {
		commentPtr = &comment
	}

	var (
		l   *LeaveRequest
		now time.Time
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		uqtx := s.users.WithTx(tx)

		rev, err := uqtx.FindByID(ctx, reviewer)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrReviewerNotFound
			}
			return err
		}
		if rev.Role != user.RoleHR {
			return leaveerrors.ErrReviewerNotHR
		}

		l, err = qtx.FindByID(ctx, leaveID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return leaveerrors.ErrLeaveNotFound
			}
			return err
		}
		if l.Status != StatusPending {
			s.logger.Warn("review leave invalid state",
				zap.Uint("leave_id", leaveID),
				zap.String("status", l.Status),
			)
			return leaveerrors.ErrAlreadyReviewed
		}

		if targetStatus == StatusApproved {
			if err := uqtx.DebitLeaveBalance(ctx, l.EmployeeID, l.Days); err != nil {
				if errors.Is(err, usererrors.ErrInsufficientBalance) {
					return leaveerrors.ErrInsufficientBalance
				}
				s.logger.Error("review leave debit failed", zap.Uint("leave_id", leaveID), zap.Error(err))
				return err
			}
		}

		now = time.Now().UTC()
		reviewed, err := qtx.MarkReviewed(ctx, leaveID, targetStatus, reviewer, now, commentPtr)
		if err != nil {
			s.logger.Error("review leave persist failed", zap.Uint("leave_id", leaveID), zap.Error(err))
			return err
		}
		if !reviewed {
			// Lost the race against a concurrent reviewer; rolling back
			// here also undoes the debit above
			return leaveerrors.ErrAlreadyReviewed
		}
		return nil
	})
	if err != nil {
		return LeaveResponse{}, err
	}

	l.Status = targetStatus
	l.ReviewedBy = &reviewer
	l.ReviewedAt = &now
	l.ReviewComment = commentPtr

	s.logger.Info("review leave success",
		zap.Uint("leave_id", leaveID),
		zap.String("status", targetStatus),
		zap.Uint("reviewed_by", reviewer),
	)
	return mapToResponse(*l), nil
}

func parseID(v string, invalid error) (uint, error) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, invalid
	}
	return uint(id), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Days:       l.Days,
		LeaveType:  l.LeaveType,
		Reason:     l.Reason,
		Status:     l.Status,
		AppliedAt:  l.AppliedAt.Format(time.RFC3339),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
	}
	resp.ReviewedBy = l.ReviewedBy
	if l.ReviewedAt != nil {
		v := l.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewComment = l.ReviewComment
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
