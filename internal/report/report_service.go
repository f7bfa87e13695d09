package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leaverequest"
	reporterrors "leavedesk/internal/report/errors"
	"leavedesk/internal/shared/dateutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DashboardCacheKey holds the cached dashboard snapshot. The leave-status
// consumer drops it whenever a request is decided.
const DashboardCacheKey = "reports:dashboard"

const dashboardCacheTTL = 5 * time.Minute

type DashboardResponse struct {
	GeneratedAt      string                              `json:"generated_at"`
	OnLeaveToday     []leaverequest.LeaveRequestResponse `json:"on_leave_today"`
	Upcoming         []leaverequest.LeaveRequestResponse `json:"upcoming"`
	TopLeaveTakers   []TopLeaveTaker                     `json:"top_leave_takers"`
	MonthlySeries    []MonthlyBucket                     `json:"monthly_series"`
	TypeDistribution map[string]int                      `json:"type_distribution"`
}

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Dashboard(ctx context.Context) (DashboardResponse, error)
	MonthlySeries(ctx context.Context, monthsBack int, asOf time.Time, employeeID string) ([]MonthlyBucket, error)
	TopLeaveTakers(ctx context.Context, n int) ([]TopLeaveTaker, error)
	TypeDistribution(ctx context.Context) (map[string]int, error)
	EmployeeBreakdown(ctx context.Context, employeeID string, from, to *time.Time) (EmployeeBreakdown, error)
	ExportExcel(ctx context.Context) ([]byte, error)
	ExportPDF(ctx context.Context) ([]byte, error)
}

const (
	topTakersDefault = 10
	monthsBackDefault = 12
	upcomingHorizon   = 30
)

type service struct {
	leaveRepo    leaverequest.Repository
	employeeRepo employee.Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
}

func NewService(
	leaveRepo leaverequest.Repository,
	employeeRepo employee.Repository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       l,
	}
}

// Dashboard computes the full snapshot from freshly fetched records, cached
// briefly. Singleflight collapses concurrent misses to one computation.
func (s *service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, DashboardCacheKey).Result(); err == nil {
			var resp DashboardResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(DashboardCacheKey, func() (interface{}, error) {
		resp, err := s.computeDashboard(ctx)
		if err != nil {
			return nil, err
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, DashboardCacheKey, jsonData, dashboardCacheTTL)
			}
		}
		return resp, nil
	})
	if err != nil {
		return DashboardResponse{}, err
	}
	return v.(DashboardResponse), nil
}

func (s *service) computeDashboard(ctx context.Context) (DashboardResponse, error) {
	now := time.Now().UTC()

	records, err := s.leaveRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("dashboard fetch leave requests failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	employees, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("dashboard fetch employees failed", zap.Error(err))
		return DashboardResponse{}, err
	}

	entries := leaverequest.OnLeave(records, now)
	onLeave := make([]leaverequest.LeaveRequestResponse, len(entries))
	for i, e := range entries {
		onLeave[i] = leaverequest.MapToResponse(e.Request)
	}

	upcoming := leaverequest.UpcomingLeaves(records, now, upcomingHorizon)
	upcomingResp := make([]leaverequest.LeaveRequestResponse, len(upcoming))
	for i, r := range upcoming {
		upcomingResp[i] = leaverequest.MapToResponse(r)
	}

	return DashboardResponse{
		GeneratedAt:      now.Format(time.RFC3339),
		OnLeaveToday:     onLeave,
		Upcoming:         upcomingResp,
		TopLeaveTakers:   TopLeaveTakers(records, employees, topTakersDefault),
		MonthlySeries:    MonthlySeries(records, monthsBackDefault, now, nil),
		TypeDistribution: LeaveTypeDistribution(records),
	}, nil
}

func (s *service) MonthlySeries(ctx context.Context, monthsBack int, asOf time.Time, employeeID string) ([]MonthlyBucket, error) {
	if monthsBack <= 0 {
		monthsBack = monthsBackDefault
	}

	var filter *uuid.UUID
	if employeeID != "" {
		parsed, err := uuid.Parse(employeeID)
		if err != nil {
			return nil, reporterrors.ErrInvalidEmployeeID
		}
		filter = &parsed
	}

	records, err := s.leaveRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("monthly series fetch failed", zap.Error(err))
		return nil, err
	}

	return MonthlySeries(records, monthsBack, asOf, filter), nil
}

func (s *service) TopLeaveTakers(ctx context.Context, n int) ([]TopLeaveTaker, error) {
	if n <= 0 {
		n = topTakersDefault
	}

	records, err := s.leaveRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return TopLeaveTakers(records, employees, n), nil
}

func (s *service) TypeDistribution(ctx context.Context) (map[string]int, error) {
	records, err := s.leaveRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return LeaveTypeDistribution(records), nil
}

func (s *service) EmployeeBreakdown(ctx context.Context, employeeID string, from, to *time.Time) (EmployeeBreakdown, error) {
	empUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return EmployeeBreakdown{}, reporterrors.ErrInvalidEmployeeID
	}

	records, err := s.leaveRepo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("employee breakdown fetch failed", zap.Error(err))
		return EmployeeBreakdown{}, err
	}

	var rng *BreakdownRange
	if from != nil || to != nil {
		rng = &BreakdownRange{From: from, To: to}
	}
	return EmployeeLeaveBreakdown(records, empUUID, rng), nil
}

func (s *service) ExportExcel(ctx context.Context) ([]byte, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	data, err := buildLeaveReportWorkbook(dashboard)
	if err != nil {
		s.logger.Error("build excel report failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("excel report generated", zap.Int("bytes", len(data)))
	return data, nil
}

func (s *service) ExportPDF(ctx context.Context) ([]byte, error) {
	dashboard, err := s.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	lines := []string{
		"Leave Report",
		fmt.Sprintf("Generated at %s", dashboard.GeneratedAt),
		"",
		"Monthly summary (approved days):",
	}
	for _, bucket := range dashboard.MonthlySeries {
		lines = append(lines, fmt.Sprintf("  %s  days=%d  employees=%d  requests=%d",
			bucket.Month, bucket.TotalDays, bucket.UniqueEmployee, bucket.RequestCount))
	}

	lines = append(lines, "", "Top leave takers:")
	for _, taker := range dashboard.TopLeaveTakers {
		lines = append(lines, fmt.Sprintf("  %s  %d days", taker.EmployeeName, taker.TotalDays))
	}

	lines = append(lines, "", "Requests per leave type:")
	typeNames := make([]string, 0, len(dashboard.TypeDistribution))
	for name := range dashboard.TypeDistribution {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		lines = append(lines, fmt.Sprintf("  %s  %d", name, dashboard.TypeDistribution[name]))
	}

	data, err := buildLeaveReportPDF(lines)
	if err != nil {
		s.logger.Error("build pdf report failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("pdf report generated", zap.Int("bytes", len(data)))
	return data, nil
}

// ParseRangeBound turns an optional YYYY-MM-DD query value into a bound.
func ParseRangeBound(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := dateutil.ParseDate(v)
	if err != nil {
		return nil, reporterrors.ErrInvalidDateFormat
	}
	return &t, nil
}
