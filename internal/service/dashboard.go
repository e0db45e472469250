package service

import (
	"context"
	"fmt"
	"math"

	"github.com/acadflow/academy-api/internal/domain"
)

// DashboardStats is the academy-wide roll-up of financial and CRM
// figures. Amounts are integers; only the rates are percentages,
// rounded half away from zero.
type DashboardStats struct {
	TotalStudents  int `json:"total_students"`
	TotalCollected int `json:"total_collected"`
	TotalRemaining int `json:"total_remaining"`
	FullPaidCount  int `json:"full_paid_count"`
	PendingReviews int `json:"pending_reviews"`

	TotalLeads     int                       `json:"total_leads"`
	ConvertedLeads int                       `json:"converted_leads"`
	ConversionRate int                       `json:"conversion_rate"`
	LeadsByStatus  map[domain.LeadStatus]int `json:"leads_by_status"`
}

type DashboardService struct {
	students StudentRepository
	leads    LeadRepository
}

func NewDashboardService(students StudentRepository, leads LeadRepository) *DashboardService {
	return &DashboardService{
		students: students,
		leads:    leads,
	}
}

// Stats derives the dashboard from the current store contents. It is a
// pure read: computing it twice with no intervening writes yields
// identical results.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	students, err := s.students.List(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("s.students.List -> %w", err)
	}

	leads, err := s.leads.List(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("s.leads.List -> %w", err)
	}

	stats := DashboardStats{
		TotalStudents: len(students),
		TotalLeads:    len(leads),
		LeadsByStatus: make(map[domain.LeadStatus]int),
	}

	for _, student := range students {
		payments := student.Payments()
		stats.TotalCollected += payments.Paid
		stats.TotalRemaining += payments.Remaining
		if payments.FullyPaid {
			stats.FullPaidCount++
		}
		stats.PendingReviews += student.PendingReviews()
	}

	for _, lead := range leads {
		stats.LeadsByStatus[lead.Status]++
		if lead.Status == domain.LeadConverted {
			stats.ConvertedLeads++
		}
	}

	if stats.TotalLeads > 0 {
		stats.ConversionRate = int(math.Round(float64(stats.ConvertedLeads) / float64(stats.TotalLeads) * 100))
	}

	return stats, nil
}
