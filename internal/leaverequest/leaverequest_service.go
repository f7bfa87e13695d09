package leaverequest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"leavedesk/internal/attachment"
	attachmenterrors "leavedesk/internal/attachment/errors"
	"leavedesk/internal/employee"
	"leavedesk/internal/events"
	leaverequesterrors "leavedesk/internal/leaverequest/errors"
	"leavedesk/internal/leavetype"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/dateutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest, att *AttachmentUpload) (LeaveRequestResponse, error)
	GetAll(ctx context.Context) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (LeaveRequestResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	Edit(ctx context.Context, actorID, id string, req UpdateLeaveRequestRequest, att *AttachmentUpload) (LeaveRequestResponse, error)
	Approve(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	Reject(ctx context.Context, actorID, id string) (LeaveRequestResponse, error)
	Delete(ctx context.Context, id string) error
	DeleteBatch(ctx context.Context, ids []string) (BulkDeleteResult, error)
	Attendance(ctx context.Context, asOf time.Time, horizonDays int) (AttendanceResponse, error)
	Quota(ctx context.Context, employeeID, leaveTypeID string, requestedDays int) (QuotaCheck, error)
}

type service struct {
	db            *sql.DB
	repo          Repository
	employeeRepo  employee.Repository
	leaveTypeRepo leavetype.Repository
	store         attachment.Store
	outbox        kafka.OutboxRepository
	logger        *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	leaveTypeRepo leavetype.Repository,
	store attachment.Store,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:            db,
		repo:          repo,
		employeeRepo:  employeeRepo,
		leaveTypeRepo: leaveTypeRepo,
		store:         store,
		outbox:        outbox,
		logger:        l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequestRequest, att *AttachmentUpload) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave request requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type_id", req.LeaveTypeID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	start, end, err := parseSpan(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	// Attachment validation comes before any lookup, upload or write.
	if att != nil && !attachment.IsAllowedImageMIME(att.MIMEType) {
		return LeaveRequestResponse{}, attachmenterrors.ErrUnsupportedFileType
	}

	empl, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	days := dateutil.CalculateDays(start, end)
	if req.ApprovedDays != nil {
		days = *req.ApprovedDays
	}

	// Quota is advisory at submission. The request is created either way;
	// approval is the enforcement point.
	existing, err := s.repo.FindByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	quota := CheckQuota(existing, empl.ID, lt.ID, lt.MaxDays, days)

	lr := &LeaveRequest{
		ID:                  uuid.New(),
		EmployeeID:          empl.ID,
		EmployeeName:        empl.FullName,
		EmployeeDesignation: empl.Designation,
		EmployeeDepartment:  empl.Department,
		LeaveTypeID:         lt.ID,
		LeaveTypeName:       lt.Name,
		StartDate:           start,
		EndDate:             end,
		ApprovedDays:        days,
		Comments:            req.Comments,
		Status:              StatusPending,
		CreatedBy:           actorUUID,
	}

	if att != nil {
		uploaded, err := s.store.Upload(ctx, att.Data, att.Filename, att.MIMEType)
		if err != nil {
			s.logger.Error("attachment upload failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		lr.AttachmentFileID = &uploaded.FileID
		lr.AttachmentFileName = &uploaded.FileName
		lr.AttachmentViewURL = &uploaded.ViewURL
	}

	if err := s.repo.Create(ctx, lr); err != nil {
		s.logger.Error("create leave request persist failed", zap.String("request_id", rid), zap.Error(err))
		// A failed create must not leave an orphaned upload behind.
		if lr.AttachmentFileID != nil {
			s.cleanupAttachment(ctx, *lr.AttachmentFileID)
		}
		return LeaveRequestResponse{}, err
	}

	resp := MapToResponse(*lr)
	if !quota.WithinLimit {
		resp.QuotaWarning = &quota
		s.logger.Warn("leave request created over quota",
			zap.String("request_id", rid),
			zap.String("leave_request_id", lr.ID.String()),
			zap.Int("used", quota.Used),
			zap.Intp("limit", quota.Limit),
			zap.Int("requested", days),
		)
	}

	s.logger.Info("create leave request success",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.Int("approved_days", days),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveRequestResponse, error) {
	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all leave requests failed", zap.Error(err))
		return nil, err
	}
	return MapToListResponse(records), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveRequestID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		s.logger.Error("get leave request by id failed", zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	return MapToResponse(*lr), nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("get leave requests by employee failed", zap.Error(err))
		return nil, err
	}
	return MapToListResponse(records), nil
}

// Edit rewrites every field of a pending request except the submission stamp.
func (s *service) Edit(ctx context.Context, actorID, id string, req UpdateLeaveRequestRequest, att *AttachmentUpload) (LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveRequestResponse{}, leaverequesterrors.ErrInvalidActorID
	}

	start, end, err := parseSpan(req.StartDate, req.EndDate)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if att != nil && !attachment.IsAllowedImageMIME(att.MIMEType) {
		return LeaveRequestResponse{}, attachmenterrors.ErrUnsupportedFileType
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return LeaveRequestResponse{}, err
	}

	if !lr.IsPending() {
		return LeaveRequestResponse{}, leaverequesterrors.ErrEditNonPending
	}

	empl, err := s.employeeRepo.FindByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrEmployeeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	lt, err := s.leaveTypeRepo.FindByID(ctx, req.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequestResponse{}, leaverequesterrors.ErrLeaveTypeNotFound
		}
		return LeaveRequestResponse{}, err
	}

	days := dateutil.CalculateDays(start, end)
	if req.ApprovedDays != nil {
		days = *req.ApprovedDays
	}

	previousFileID := lr.AttachmentFileID
	if att != nil {
		uploaded, err := s.store.Upload(ctx, att.Data, att.Filename, att.MIMEType)
		if err != nil {
			s.logger.Error("attachment upload failed", zap.String("leave_request_id", id), zap.Error(err))
			return LeaveRequestResponse{}, err
		}
		lr.AttachmentFileID = &uploaded.FileID
		lr.AttachmentFileName = &uploaded.FileName
		lr.AttachmentViewURL = &uploaded.ViewURL
	}

	lr.EmployeeID = empl.ID
	lr.EmployeeName = empl.FullName
	lr.EmployeeDesignation = empl.Designation
	lr.EmployeeDepartment = empl.Department
	lr.LeaveTypeID = lt.ID
	lr.LeaveTypeName = lt.Name
	lr.StartDate = start
	lr.EndDate = end
	lr.ApprovedDays = days
	lr.Comments = req.Comments

	if err := s.repo.Update(ctx, lr); err != nil {
		s.logger.Error("edit leave request persist failed", zap.String("leave_request_id", id), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	// The replaced file goes away best-effort once the new one is durable.
	if att != nil && previousFileID != nil {
		s.cleanupAttachment(ctx, *previousFileID)
	}

	s.logger.Info("edit leave request success", zap.String("leave_request_id", id))
	return MapToResponse(*lr), nil
}

// Approve is the quota enforcement point. Over-quota submissions get through
// creation with a warning, but an approval that would push usage past the
// type's limit fails here.
func (s *service) Approve(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	lr, err := s.loadPending(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	limit, err := s.quotaLimit(ctx, lr.LeaveTypeID)
	if err != nil {
		return LeaveRequestResponse{}, err
	}

	if limit != nil {
		records, err := s.repo.FindByEmployee(ctx, lr.EmployeeID.String())
		if err != nil {
			return LeaveRequestResponse{}, err
		}
		quota := CheckQuota(records, lr.EmployeeID, lr.LeaveTypeID, limit, lr.ApprovedDays)
		if !quota.WithinLimit {
			s.logger.Warn("approval rejected over quota",
				zap.String("leave_request_id", id),
				zap.Int("used", quota.Used),
				zap.Intp("limit", quota.Limit),
				zap.Int("requested", lr.ApprovedDays),
			)
			return LeaveRequestResponse{}, leaverequesterrors.ErrQuotaExceeded
		}
	}

	return s.decide(ctx, lr, StatusApproved, actorID)
}

func (s *service) Reject(ctx context.Context, actorID, id string) (LeaveRequestResponse, error) {
	lr, err := s.loadPending(ctx, actorID, id)
	if err != nil {
		return LeaveRequestResponse{}, err
	}
	return s.decide(ctx, lr, StatusRejected, actorID)
}

func (s *service) loadPending(ctx context.Context, actorID, id string) (*LeaveRequest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return nil, leaverequesterrors.ErrInvalidActorID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrLeaveRequestNotFound
		}
		return nil, err
	}

	if !lr.IsPending() {
		return nil, leaverequesterrors.ErrDecideNonPending
	}
	return lr, nil
}

// quotaLimit resolves the type's quota for enforcement. A deleted leave type
// no longer constrains its historical requests.
func (s *service) quotaLimit(ctx context.Context, leaveTypeID uuid.UUID) (*int, error) {
	lt, err := s.leaveTypeRepo.FindByID(ctx, leaveTypeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return lt.MaxDays, nil
}

func (s *service) decide(ctx context.Context, lr *LeaveRequest, status, actorID string) (LeaveRequestResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateStatus(ctx, lr.ID.String(), status, actorID, now); err != nil {
		s.logger.Error("decide status update failed",
			zap.String("leave_request_id", lr.ID.String()),
			zap.String("status", status),
			zap.Error(err),
		)
		return LeaveRequestResponse{}, err
	}

	if s.outbox != nil {
		event := events.LeaveStatusChangedEvent{
			EventType:      "leave_status_changed",
			LeaveRequestID: lr.ID.String(),
			EmployeeID:     lr.EmployeeID.String(),
			LeaveTypeID:    lr.LeaveTypeID.String(),
			Status:         status,
			ApprovedDays:   lr.ApprovedDays,
			ActorID:        actorID,
			OccurredAt:     now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return LeaveRequestResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "leave_request",
			AggregateID:   lr.ID.String(),
			EventType:     event.EventType,
			Topic:         events.LeaveStatusChangedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("decide outbox persist failed",
				zap.String("leave_request_id", lr.ID.String()),
				zap.Error(err),
			)
			return LeaveRequestResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveRequestResponse{}, err
	}

	actorUUID, _ := uuid.Parse(actorID)
	lr.Status = status
	lr.DecidedBy = &actorUUID
	lr.DecidedAt = &now

	s.logger.Info("leave request decided",
		zap.String("request_id", rid),
		zap.String("leave_request_id", lr.ID.String()),
		zap.String("status", status),
	)
	return MapToResponse(*lr), nil
}

// Delete removes a pending request, then tries to clean up its attachment.
// Cleanup failure is logged and swallowed: the record removal is the
// authoritative action.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return leaverequesterrors.ErrInvalidLeaveRequestID
	}

	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaverequesterrors.ErrLeaveRequestNotFound
		}
		return err
	}

	if !lr.IsPending() {
		return leaverequesterrors.ErrDeleteNonPending
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete leave request failed", zap.String("leave_request_id", id), zap.Error(err))
		return err
	}

	if lr.AttachmentFileID != nil {
		s.cleanupAttachment(ctx, *lr.AttachmentFileID)
	}

	s.logger.Info("delete leave request success", zap.String("leave_request_id", id))
	return nil
}

// DeleteBatch walks the ids one at a time. Each item needs its own
// attachment cleanup, so the batch is sequential and best-effort; a failure
// partway leaves earlier deletions in place.
func (s *service) DeleteBatch(ctx context.Context, ids []string) (BulkDeleteResult, error) {
	result := BulkDeleteResult{
		Deleted: make([]string, 0, len(ids)),
		Failed:  make([]BulkDeleteFailure, 0),
	}

	for _, id := range ids {
		if err := s.Delete(ctx, id); err != nil {
			result.Failed = append(result.Failed, BulkDeleteFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	s.logger.Info("bulk delete leave requests finished",
		zap.Int("deleted", len(result.Deleted)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

func (s *service) Attendance(ctx context.Context, asOf time.Time, horizonDays int) (AttendanceResponse, error) {
	if horizonDays <= 0 {
		horizonDays = 30
	}

	records, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("attendance fetch failed", zap.Error(err))
		return AttendanceResponse{}, err
	}

	entries := OnLeave(records, asOf)
	onLeave := make([]LeaveRequestResponse, len(entries))
	for i, e := range entries {
		onLeave[i] = MapToResponse(e.Request)
	}

	return AttendanceResponse{
		OnLeave:  onLeave,
		Upcoming: MapToListResponse(UpcomingLeaves(records, asOf, horizonDays)),
	}, nil
}

func (s *service) Quota(ctx context.Context, employeeID, leaveTypeID string, requestedDays int) (QuotaCheck, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return QuotaCheck{}, leaverequesterrors.ErrInvalidLeaveRequestID
	}
	ltUUID, err := uuid.Parse(leaveTypeID)
	if err != nil {
		return QuotaCheck{}, leaverequesterrors.ErrInvalidLeaveRequestID
	}

	limit, err := s.quotaLimit(ctx, ltUUID)
	if err != nil {
		return QuotaCheck{}, err
	}

	records, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		return QuotaCheck{}, err
	}

	return CheckQuota(records, empUUID, ltUUID, limit, requestedDays), nil
}

func (s *service) cleanupAttachment(ctx context.Context, fileID string) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, fileID); err != nil {
		s.logger.Error("best-effort attachment cleanup failed",
			zap.String("file_id", fileID),
			zap.Error(err),
		)
	}
}

func parseSpan(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := dateutil.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	end, err := dateutil.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrEndBeforeStart
	}
	return start, end, nil
}

func MapToResponse(lr LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:                  lr.ID.String(),
		EmployeeID:          lr.EmployeeID.String(),
		EmployeeName:        lr.EmployeeName,
		EmployeeDesignation: lr.EmployeeDesignation,
		EmployeeDepartment:  lr.EmployeeDepartment,
		LeaveTypeID:         lr.LeaveTypeID.String(),
		LeaveTypeName:       lr.LeaveTypeName,
		StartDate:           lr.StartDate.Format(dateutil.DateLayout),
		EndDate:             lr.EndDate.Format(dateutil.DateLayout),
		ApprovedDays:        lr.ApprovedDays,
		Comments:            lr.Comments,
		Status:              lr.Status,
	}
	if lr.CreatedBy != uuid.Nil {
		resp.CreatedBy = lr.CreatedBy.String()
	}
	if !lr.CreatedAt.IsZero() {
		resp.CreatedAt = lr.CreatedAt.Format(time.RFC3339)
	}
	if lr.DecidedBy != nil {
		resp.DecidedBy = lr.DecidedBy.String()
	}
	if lr.DecidedAt != nil {
		resp.DecidedAt = lr.DecidedAt.Format(time.RFC3339)
	}
	if lr.AttachmentFileID != nil {
		att := &AttachmentResponse{FileID: *lr.AttachmentFileID}
		if lr.AttachmentFileName != nil {
			att.FileName = *lr.AttachmentFileName
		}
		if lr.AttachmentViewURL != nil {
			att.ViewURL = *lr.AttachmentViewURL
		}
		resp.Attachment = att
	}
	return resp
}

func MapToListResponse(records []LeaveRequest) []LeaveRequestResponse {
	res := make([]LeaveRequestResponse, len(records))
	for i, r := range records {
		res[i] = MapToResponse(r)
	}
	return res
}
