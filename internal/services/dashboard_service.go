package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/pmtrack/backend/internal/models"
	"github.com/pmtrack/backend/internal/repositories"
)

// AgingBuckets groups open issues by days since creation.
type AgingBuckets struct {
	UpToWeek    int `json:"up_to_week"`    // 0..7 days
	UpToMonth   int `json:"up_to_month"`   // 8..30
	UpToQuarter int `json:"up_to_quarter"` // 31..90
	OverQuarter int `json:"over_quarter"`  // 91+
}

// BucketAges sorts day counts into aging buckets.
func BucketAges(ages []int) AgingBuckets {
	var b AgingBuckets
	for _, d := range ages {
		switch {
		case d <= 7:
			b.UpToWeek++
		case d <= 30:
			b.UpToMonth++
		case d <= 90:
			b.UpToQuarter++
		default:
			b.OverQuarter++
		}
	}
	return b
}

type DashboardSummary struct {
	Issues           map[string]int `json:"issues"`
	Risks            map[string]int `json:"risks"`
	Changes          map[string]int `json:"changes"`
	Escalations      map[string]int `json:"escalations"`
	Faults           map[string]int `json:"faults"`
	TopRisks         []models.Risk  `json:"top_risks"`
	OverdueActions   int            `json:"overdue_actions"`
	PendingApprovals int            `json:"pending_approvals"`
	IssueAging       AgingBuckets   `json:"issue_aging"`
}

type DashboardService struct {
	dashboardRepo *repositories.DashboardRepo
	riskRepo      *repositories.RiskRepo
	actionRepo    *repositories.ActionRepo
	topRisksLimit int
	log           *zap.Logger
}

func NewDashboardService(
	dashboardRepo *repositories.DashboardRepo,
	riskRepo *repositories.RiskRepo,
	actionRepo *repositories.ActionRepo,
	topRisksLimit int,
	log *zap.Logger,
) *DashboardService {
	if topRisksLimit <= 0 {
		topRisksLimit = 5
	}
	return &DashboardService{
		dashboardRepo: dashboardRepo,
		riskRepo:      riskRepo,
		actionRepo:    actionRepo,
		topRisksLimit: topRisksLimit,
		log:           log,
	}
}

func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	sum := &DashboardSummary{}

	tables := []struct {
		name string
		dst  *map[string]int
	}{
		{"issues", &sum.Issues},
		{"risks", &sum.Risks},
		{"changes", &sum.Changes},
		{"escalations", &sum.Escalations},
		{"faults", &sum.Faults},
	}
	for _, t := range tables {
		counts, err := s.dashboardRepo.StatusCounts(ctx, t.name)
		if err != nil {
			return nil, err
		}
		*t.dst = counts
	}

	topRisks, err := s.riskRepo.List(ctx, repositories.RiskFilter{ExcludeClosed: true, Limit: s.topRisksLimit})
	if err != nil {
		return nil, err
	}
	sum.TopRisks = topRisks

	overdue, err := s.actionRepo.OverdueCount(ctx)
	if err != nil {
		return nil, err
	}
	sum.OverdueActions = overdue

	pending, err := s.dashboardRepo.PendingApprovals(ctx)
	if err != nil {
		return nil, err
	}
	sum.PendingApprovals = pending

	ages, err := s.dashboardRepo.OpenIssueAges(ctx)
	if err != nil {
		return nil, err
	}
	sum.IssueAging = BucketAges(ages)

	return sum, nil
}
