package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/store"
)

func seededRouter(t *testing.T) (*store.MemStore, *gin.Engine) {
	t.Helper()
	st := store.NewMemStore()
	if err := store.SeedCutoffs(context.Background(), st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st, newTestRouter(st, &fakeLLM{})
}

func TestListCutoffs_All(t *testing.T) {
	_, r := seededRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/college-cutoffs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	items := decodeJSON[[]domain.CollegeCutoff](t, w)
	if len(items) != store.SeedCutoffCount {
		t.Fatalf("expected %d rows, got %d", store.SeedCutoffCount, len(items))
	}
	if w.Header().Get("ETag") == "" {
		t.Fatal("ETag header missing")
	}
}

func TestListCutoffs_Filtered(t *testing.T) {
	_, r := seededRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/college-cutoffs?university=MIT&academicYear=2023-2024", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	items := decodeJSON[[]domain.CollegeCutoff](t, w)
	if len(items) == 0 {
		t.Fatal("expected matches")
	}
	for _, it := range items {
		if it.University != "MIT" || it.AcademicYear != "2023-2024" {
			t.Fatalf("filter leaked row: %+v", it)
		}
	}
}

func TestListCutoffs_ETagRoundTrip(t *testing.T) {
	_, r := seededRouter(t)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/college-cutoffs", nil))
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("no ETag on first response")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/college-cutoffs", nil)
	req.Header.Set("If-None-Match", etag)
	second := httptest.NewRecorder()
	r.ServeHTTP(second, req)
	if second.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", second.Code)
	}

	// Appending a row changes the ETag, so the stale tag revalidates.
	create := doJSON(t, r, http.MethodPost, "/api/college-cutoffs", CreateCutoffRequest{
		University: "Acme Tech", Program: "CS", Country: "Nowhere",
		GPA: "3.5", TestScores: "N/A", AcceptanceRate: "50%", AcademicYear: "2024-2025",
	})
	if create.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", create.Code, create.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/college-cutoffs", nil)
	req.Header.Set("If-None-Match", etag)
	third := httptest.NewRecorder()
	r.ServeHTTP(third, req)
	if third.Code != http.StatusOK {
		t.Fatalf("stale ETag must revalidate, got %d", third.Code)
	}
}

func TestCreateCutoff(t *testing.T) {
	st := store.NewMemStore()
	r := newTestRouter(st, &fakeLLM{})

	w := doJSON(t, r, http.MethodPost, "/api/college-cutoffs", CreateCutoffRequest{
		University: "Acme Tech", Program: "CS", Country: "Nowhere",
		GPA: "3.5", TestScores: "N/A", AcceptanceRate: "50%", AcademicYear: "2024-2025",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	c := decodeJSON[domain.CollegeCutoff](t, w)
	if c.ID != 1 || c.University != "Acme Tech" {
		t.Fatalf("unexpected row: %+v", c)
	}

	// Missing field fails binding.
	w = doJSON(t, r, http.MethodPost, "/api/college-cutoffs", map[string]string{"university": "X"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("incomplete status = %d", w.Code)
	}
}

func TestDistinctEndpoints(t *testing.T) {
	_, r := seededRouter(t)

	for _, path := range []string{
		"/api/college-cutoffs/programs",
		"/api/college-cutoffs/universities",
		"/api/college-cutoffs/countries",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, w.Code)
		}
		values := decodeJSON[[]string](t, w)
		if len(values) == 0 {
			t.Fatalf("%s: empty", path)
		}
		if !sort.StringsAreSorted(values) {
			t.Fatalf("%s: not sorted: %v", path, values)
		}
	}
}

func TestScholarshipEndpoints(t *testing.T) {
	st := store.NewMemStore()
	r := newTestRouter(st, &fakeLLM{})

	w := doJSON(t, r, http.MethodPost, "/api/scholarships", CreateScholarshipRequest{
		Name: "STEM Futures Grant", Amount: "$10,000", FieldOfStudy: "Engineering",
		Deadline: "2024-12-01", Eligibility: "Undergraduate", Description: "Annual merit award.",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/scholarships?fieldOfStudy=Engineering", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("list status = %d", w2.Code)
	}
	items := decodeJSON[[]domain.Scholarship](t, w2)
	if len(items) != 1 || items[0].Name != "STEM Futures Grant" {
		t.Fatalf("unexpected list: %+v", items)
	}

	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, httptest.NewRequest(http.MethodGet, "/api/scholarships?fieldOfStudy=Arts", nil))
	if got := decodeJSON[[]domain.Scholarship](t, w3); len(got) != 0 {
		t.Fatalf("expected no Arts matches, got %+v", got)
	}
}
