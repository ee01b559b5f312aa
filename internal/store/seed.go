package store

import (
	"context"

	"github.com/edupath/go-edupath-backend/internal/domain"
)

// seedCutoffs is the fixed dataset loaded at startup so the cutoffs UI has
// content before any admin data entry. Rows mirror the universities,
// programs, and years offered by the reference-data filters.
var seedCutoffs = []domain.CollegeCutoff{
	{University: "Harvard University", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1520-1580", AcceptanceRate: "4%", AcademicYear: "2023-2024"},
	{University: "Harvard University", Program: "Business", Country: "USA", GPA: "3.9+", TestScores: "SAT 1500-1570", AcceptanceRate: "5%", AcademicYear: "2023-2024"},
	{University: "Harvard University", Program: "Medicine", Country: "USA", GPA: "3.9+", TestScores: "MCAT 518+", AcceptanceRate: "3%", AcademicYear: "2023-2024"},
	{University: "Stanford University", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1500-1570", AcceptanceRate: "4%", AcademicYear: "2023-2024"},
	{University: "Stanford University", Program: "Engineering", Country: "USA", GPA: "3.8+", TestScores: "SAT 1490-1560", AcceptanceRate: "5%", AcademicYear: "2023-2024"},
	{University: "MIT", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1530-1580", AcceptanceRate: "4%", AcademicYear: "2023-2024"},
	{University: "MIT", Program: "Engineering", Country: "USA", GPA: "3.9+", TestScores: "SAT 1520-1580", AcceptanceRate: "4%", AcademicYear: "2023-2024"},
	{University: "California Institute of Technology", Program: "Engineering", Country: "USA", GPA: "3.9+", TestScores: "SAT 1530-1580", AcceptanceRate: "3%", AcademicYear: "2023-2024"},
	{University: "California Institute of Technology", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1530-1580", AcceptanceRate: "3%", AcademicYear: "2023-2024"},
	{University: "Harvard University", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1510-1580", AcceptanceRate: "4%", AcademicYear: "2022-2023"},
	{University: "Stanford University", Program: "Computer Science", Country: "USA", GPA: "3.9+", TestScores: "SAT 1500-1570", AcceptanceRate: "4%", AcademicYear: "2022-2023"},
	{University: "MIT", Program: "Business", Country: "USA", GPA: "3.8+", TestScores: "SAT 1500-1560", AcceptanceRate: "5%", AcademicYear: "2022-2023"},
}

// welcomeMessage is the ownerless assistant greeting every user sees at
// the top of their chat history.
const welcomeMessage = "Hi! I'm your EduPath assistant. Ask me anything about college admissions, cutoffs, or scholarships."

// SeedCutoffCount is the number of rows SeedCutoffs inserts.
var SeedCutoffCount = len(seedCutoffs)

// SeedCutoffs inserts the fixed cutoff dataset. It is NOT idempotent:
// calling it twice duplicates every row. Callers are expected to invoke it
// exactly once per empty store, before the facade is exposed; see Bootstrap.
func SeedCutoffs(ctx context.Context, s Store) error {
	for _, c := range seedCutoffs {
		if _, err := s.CreateCollegeCutoff(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// SeedWelcomeMessage inserts the global assistant greeting.
func SeedWelcomeMessage(ctx context.Context, s Store) error {
	_, err := s.CreateChatMessage(ctx, NewChatMessage{
		Content:       welcomeMessage,
		IsUserMessage: false,
	})
	return err
}

// Bootstrap seeds reference data and the welcome message on a fresh store.
// The emptiness check makes startup safe for the durable variant, where
// data survives restarts; it is the one-shot gate around the non-idempotent
// seed functions.
func Bootstrap(ctx context.Context, s Store) error {
	n, err := s.CountCollegeCutoffs(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := SeedCutoffs(ctx, s); err != nil {
		return err
	}
	return SeedWelcomeMessage(ctx, s)
}
