// Package services – ReferenceService
//
// This file implements ReferenceService, which owns the browsable
// reference data: college admission cutoffs and scholarships. Reads are
// filtered scans delegated to the store; writes are the admin data-entry
// path and only check field completeness (values are deliberately free
// text, and duplicate cutoff tuples are permitted).
package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// ReferenceService provides cutoff and scholarship operations.
type ReferenceService struct {
	// Store is the backing record store.
	Store store.Store
}

// NewReferenceService constructs a ReferenceService over the given store.
func NewReferenceService(s store.Store) *ReferenceService {
	return &ReferenceService{Store: s}
}

// CreateCutoff stores an admin-entered cutoff row after trimming and
// completeness validation.
func (s *ReferenceService) CreateCutoff(ctx context.Context, c domain.CollegeCutoff) (*domain.CollegeCutoff, error) {
	c.University = strings.TrimSpace(c.University)
	c.Program = strings.TrimSpace(c.Program)
	c.Country = strings.TrimSpace(c.Country)
	c.GPA = strings.TrimSpace(c.GPA)
	c.TestScores = strings.TrimSpace(c.TestScores)
	c.AcceptanceRate = strings.TrimSpace(c.AcceptanceRate)
	c.AcademicYear = strings.TrimSpace(c.AcademicYear)

	if c.University == "" || c.Program == "" || c.Country == "" ||
		c.GPA == "" || c.TestScores == "" || c.AcceptanceRate == "" ||
		c.AcademicYear == "" {
		return nil, ErrIncompleteCutoff
	}
	return s.Store.CreateCollegeCutoff(ctx, c)
}

// Cutoffs returns cutoffs matching the filter, insertion order.
func (s *ReferenceService) Cutoffs(ctx context.Context, f store.CutoffFilter) ([]domain.CollegeCutoff, error) {
	tr := otel.Tracer("services/ReferenceService")
	ctx, span := tr.Start(ctx, "Cutoffs",
		trace.WithAttributes(
			attribute.String("filter.university", f.University),
			attribute.String("filter.program", f.Program),
			attribute.String("filter.country", f.Country),
			attribute.String("filter.academic_year", f.AcademicYear),
		))
	defer span.End()

	return s.Store.ListCollegeCutoffs(ctx, f)
}

// Programs returns the distinct program names, sorted ascending.
func (s *ReferenceService) Programs(ctx context.Context) ([]string, error) {
	return s.Store.DistinctPrograms(ctx)
}

// Universities returns the distinct university names, sorted ascending.
func (s *ReferenceService) Universities(ctx context.Context) ([]string, error) {
	return s.Store.DistinctUniversities(ctx)
}

// Countries returns the distinct country names, sorted ascending.
func (s *ReferenceService) Countries(ctx context.Context) ([]string, error) {
	return s.Store.DistinctCountries(ctx)
}

// CutoffCount returns the size of the cutoff collection (ETag support).
func (s *ReferenceService) CutoffCount(ctx context.Context) (int64, error) {
	return s.Store.CountCollegeCutoffs(ctx)
}

// CreateScholarship stores an admin-entered scholarship row after trimming
// and completeness validation.
func (s *ReferenceService) CreateScholarship(ctx context.Context, sc domain.Scholarship) (*domain.Scholarship, error) {
	sc.Name = strings.TrimSpace(sc.Name)
	sc.Amount = strings.TrimSpace(sc.Amount)
	sc.FieldOfStudy = strings.TrimSpace(sc.FieldOfStudy)
	sc.Deadline = strings.TrimSpace(sc.Deadline)
	sc.Eligibility = strings.TrimSpace(sc.Eligibility)
	sc.Description = strings.TrimSpace(sc.Description)

	if sc.Name == "" || sc.Amount == "" || sc.FieldOfStudy == "" ||
		sc.Deadline == "" || sc.Eligibility == "" || sc.Description == "" {
		return nil, ErrIncompleteScholarship
	}
	return s.Store.CreateScholarship(ctx, sc)
}

// Scholarships returns scholarships matching the filter, insertion order.
func (s *ReferenceService) Scholarships(ctx context.Context, f store.ScholarshipFilter) ([]domain.Scholarship, error) {
	return s.Store.ListScholarships(ctx, f)
}
