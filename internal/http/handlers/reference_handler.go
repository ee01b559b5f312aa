// Reference-data HTTP handlers: college cutoffs and scholarships.
//
// Endpoints:
//   - GET  /college-cutoffs               (filtered list, weak ETag)
//   - POST /college-cutoffs               (admin data entry)
//   - GET  /college-cutoffs/programs      (distinct values for filter UIs)
//   - GET  /college-cutoffs/universities
//   - GET  /college-cutoffs/countries
//   - GET  /scholarships                  (filtered list)
//   - POST /scholarships                  (admin data entry)
//
// Filters are exact-match and combined with AND; absent query params are
// simply not applied.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/services"
	"github.com/edupath/go-edupath-backend/internal/store"
)

// CreateCutoffRequest is the JSON payload for admin cutoff entry. All
// fields are required; values are free text.
type CreateCutoffRequest struct {
	University     string `json:"university"     binding:"required" example:"MIT"`
	Program        string `json:"program"        binding:"required" example:"Computer Science"`
	Country        string `json:"country"        binding:"required" example:"USA"`
	GPA            string `json:"gpa"            binding:"required" example:"3.9+"`
	TestScores     string `json:"testScores"     binding:"required" example:"SAT 1530-1580"`
	AcceptanceRate string `json:"acceptanceRate" binding:"required" example:"4%"`
	AcademicYear   string `json:"academicYear"   binding:"required" example:"2023-2024"`
}

// CreateScholarshipRequest is the JSON payload for admin scholarship entry.
type CreateScholarshipRequest struct {
	Name         string `json:"name"         binding:"required" example:"STEM Futures Grant"`
	Amount       string `json:"amount"       binding:"required" example:"$10,000"`
	FieldOfStudy string `json:"fieldOfStudy" binding:"required" example:"Engineering"`
	Deadline     string `json:"deadline"     binding:"required" example:"2024-12-01"`
	Eligibility  string `json:"eligibility"  binding:"required" example:"Undergraduate, 3.5+ GPA"`
	Description  string `json:"description"  binding:"required" example:"Annual merit award for engineering students."`
}

// ListCutoffs godoc
// @ID          listCollegeCutoffs
// @Summary     List college cutoffs
// @Description Returns cutoffs matching the exact-match filters, insertion order. Supports a weak ETag over the collection size.
// @Tags        Reference
// @Produce     json
// @Param       country       query  string  false "Country filter"
// @Param       university    query  string  false "University filter"
// @Param       program       query  string  false "Program filter"
// @Param       academicYear  query  string  false "Academic year filter"
// @Param       If-None-Match header string  false "Return 304 if ETag matches"
// @Success     200  {array}   domain.CollegeCutoff
// @Success     304  {string}  string "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /college-cutoffs [get]
func (h *Handlers) ListCutoffs(c *gin.Context) {
	ctx := c.Request.Context()

	// ETag pre-check (best effort). Cutoff rows are append-only, so the
	// collection size fully identifies its contents.
	if count, err := h.refSvc.CutoffCount(ctx); err == nil {
		etag := fmt.Sprintf(`W/"cutoffs:%d"`, count)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	f := store.CutoffFilter{
		University:   c.Query("university"),
		Program:      c.Query("program"),
		Country:      c.Query("country"),
		AcademicYear: c.Query("academicYear"),
	}
	items, err := h.refSvc.Cutoffs(ctx, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateCutoff godoc
// @ID          createCollegeCutoff
// @Summary     Add a college cutoff row
// @Tags        Reference
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateCutoffRequest  true  "Cutoff payload"
// @Success     201  {object}  domain.CollegeCutoff
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /college-cutoffs [post]
func (h *Handlers) CreateCutoff(c *gin.Context) {
	var req CreateCutoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	cut, err := h.refSvc.CreateCutoff(c.Request.Context(), domain.CollegeCutoff{
		University:     req.University,
		Program:        req.Program,
		Country:        req.Country,
		GPA:            req.GPA,
		TestScores:     req.TestScores,
		AcceptanceRate: req.AcceptanceRate,
		AcademicYear:   req.AcademicYear,
	})
	switch {
	case errors.Is(err, services.ErrIncompleteCutoff):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, cut)
}

// Programs godoc
// @ID          listCutoffPrograms
// @Summary     Distinct program names
// @Tags        Reference
// @Produce     json
// @Success     200  {array}   string
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /college-cutoffs/programs [get]
func (h *Handlers) Programs(c *gin.Context) {
	h.distinct(c, h.refSvc.Programs)
}

// Universities godoc
// @ID          listCutoffUniversities
// @Summary     Distinct university names
// @Tags        Reference
// @Produce     json
// @Success     200  {array}   string
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /college-cutoffs/universities [get]
func (h *Handlers) Universities(c *gin.Context) {
	h.distinct(c, h.refSvc.Universities)
}

// Countries godoc
// @ID          listCutoffCountries
// @Summary     Distinct country names
// @Tags        Reference
// @Produce     json
// @Success     200  {array}   string
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /college-cutoffs/countries [get]
func (h *Handlers) Countries(c *gin.Context) {
	h.distinct(c, h.refSvc.Countries)
}

// distinct serves one sorted distinct-value list.
func (h *Handlers) distinct(c *gin.Context, fetch func(context.Context) ([]string, error)) {
	values, err := fetch(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, values)
}

// ListScholarships godoc
// @ID          listScholarships
// @Summary     List scholarships
// @Description Returns scholarships matching the exact-match filters, insertion order.
// @Tags        Reference
// @Produce     json
// @Param       fieldOfStudy  query  string  false "Field of study filter"
// @Param       amount        query  string  false "Amount filter"
// @Param       deadline      query  string  false "Deadline filter"
// @Param       eligibility   query  string  false "Eligibility filter"
// @Success     200  {array}   domain.Scholarship
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /scholarships [get]
func (h *Handlers) ListScholarships(c *gin.Context) {
	f := store.ScholarshipFilter{
		FieldOfStudy: c.Query("fieldOfStudy"),
		Amount:       c.Query("amount"),
		Deadline:     c.Query("deadline"),
		Eligibility:  c.Query("eligibility"),
	}
	items, err := h.refSvc.Scholarships(c.Request.Context(), f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateScholarship godoc
// @ID          createScholarship
// @Summary     Add a scholarship
// @Tags        Reference
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateScholarshipRequest  true  "Scholarship payload"
// @Success     201  {object}  domain.Scholarship
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /scholarships [post]
func (h *Handlers) CreateScholarship(c *gin.Context) {
	var req CreateScholarshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	s, err := h.refSvc.CreateScholarship(c.Request.Context(), domain.Scholarship{
		Name:         req.Name,
		Amount:       req.Amount,
		FieldOfStudy: req.FieldOfStudy,
		Deadline:     req.Deadline,
		Eligibility:  req.Eligibility,
		Description:  req.Description,
	})
	switch {
	case errors.Is(err, services.ErrIncompleteScholarship):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, s)
}
