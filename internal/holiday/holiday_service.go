package holiday

import (
	"context"
	"errors"
	"fmt"
	"time"

	holidayerrors "leavedesk/internal/holiday/errors"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/dateutil"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_service.go -destination=mock/holiday_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error)
	GetAll(ctx context.Context) ([]HolidayResponse, error)
	GetByID(ctx context.Context, id string) (HolidayResponse, error)
	Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	Delete(ctx context.Context, id string) error
	ExportICal(ctx context.Context) (string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("holiday.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("holiday.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateHolidayRequest) (HolidayResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create holiday requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidActorID
	}

	start, end, err := parseSpan(req.StartDate, req.EndDate)
	if err != nil {
		return HolidayResponse{}, err
	}

	h := &Holiday{
		ID:        uuid.New(),
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
		CreatedBy: actorUUID,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		s.logger.Error("create holiday persist failed", zap.String("request_id", rid), zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("create holiday success",
		zap.String("request_id", rid),
		zap.String("holiday_id", h.ID.String()),
		zap.Int("total_days", h.TotalDays()),
	)
	return mapToResponse(*h), nil
}

func (s *service) GetAll(ctx context.Context) ([]HolidayResponse, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all holidays failed", zap.Error(err))
		return nil, err
	}
	res := make([]HolidayResponse, len(holidays))
	for i, h := range holidays {
		res[i] = mapToResponse(h)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		s.logger.Error("get holiday by id failed", zap.Error(err))
		return HolidayResponse{}, err
	}
	return mapToResponse(*h), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return HolidayResponse{}, holidayerrors.ErrInvalidHolidayID
	}

	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return HolidayResponse{}, holidayerrors.ErrHolidayNotFound
		}
		return HolidayResponse{}, err
	}

	start, end, err := parseSpan(req.StartDate, req.EndDate)
	if err != nil {
		return HolidayResponse{}, err
	}

	h.Name = req.Name
	h.StartDate = start
	h.EndDate = end

	if err := s.repo.Update(ctx, h); err != nil {
		s.logger.Error("update holiday persist failed", zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("update holiday success", zap.String("holiday_id", id))
	return mapToResponse(*h), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return holidayerrors.ErrInvalidHolidayID
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return holidayerrors.ErrHolidayNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

// ExportICal renders the whole calendar as an RFC 5545 feed of all-day
// events. DTEND is exclusive per the RFC, so the inclusive end date moves
// forward one day.
func (s *service) ExportICal(ctx context.Context) (string, error) {
	holidays, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("export ical fetch failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//leavedesk//holiday-calendar//EN")

	for _, h := range holidays {
		event := cal.AddEvent(fmt.Sprintf("%s@leavedesk", h.ID))
		event.SetSummary(h.Name)
		event.SetAllDayStartAt(h.StartDate)
		event.SetAllDayEndAt(h.EndDate.AddDate(0, 0, 1))
		event.SetDtStampTime(time.Now().UTC())
	}

	return cal.Serialize(), nil
}

func parseSpan(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := dateutil.ParseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.ParseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, holidayerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, holidayerrors.ErrEndBeforeStart
	}
	return start, end, nil
}

func mapToResponse(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:        h.ID.String(),
		Name:      h.Name,
		StartDate: h.StartDate.Format(dateutil.DateLayout),
		EndDate:   h.EndDate.Format(dateutil.DateLayout),
		TotalDays: h.TotalDays(),
	}
	if h.CreatedBy != uuid.Nil {
		resp.CreatedBy = h.CreatedBy.String()
	}
	return resp
}
