// User HTTP handlers.
//
// Endpoints:
//   - POST /users          (register after identity-provider sign-up)
//   - GET  /users/lookup   (resolve a profile by email, username, or
//     identity-provider subject id; used on first login)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edupath/go-edupath-backend/internal/domain"
	"github.com/edupath/go-edupath-backend/internal/services"
)

// CreateUserRequest is the JSON payload for registration. Password is the
// opaque placeholder mirrored from the identity provider, never returned.
type CreateUserRequest struct {
	Username   string  `json:"username" binding:"required" example:"ada"`
	Password   string  `json:"password" binding:"required" example:"placeholder"`
	Email      string  `json:"email"    binding:"required" example:"ada@example.com"`
	FirebaseID *string `json:"firebaseId,omitempty" example:"firebase-uid-123"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register a user profile
// @Description Creates the portal profile for a signed-up identity. Email and username must be unique.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateUserRequest  true  "Registration payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Validation error"
// @Failure     409  {object}  handlers.ErrorResponse  "Email or username already used"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Register(c.Request.Context(), services.RegisterInput{
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
		FirebaseID: req.FirebaseID,
	})
	switch {
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrIdentityLinked):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		return
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordRequired):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, u)
}

// LookupUser godoc
// @ID          lookupUser
// @Summary     Resolve a user profile
// @Description Looks up a profile by exactly one of email, username, or firebaseId. A miss returns 404; the client treats that as "create the profile".
// @Tags        Users
// @Produce     json
// @Param       email       query  string  false "Email to match"
// @Param       username    query  string  false "Username to match"
// @Param       firebaseId  query  string  false "Identity-provider subject id to match"
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "No lookup key provided"
// @Failure     404  {object}  handlers.ErrorResponse  "No matching profile"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/lookup [get]
func (h *Handlers) LookupUser(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		u   *domain.User
		err error
	)
	switch {
	case c.Query("email") != "":
		u, err = h.userSvc.ByEmail(ctx, c.Query("email"))
	case c.Query("username") != "":
		u, err = h.userSvc.ByUsername(ctx, c.Query("username"))
	case c.Query("firebaseId") != "":
		u, err = h.userSvc.ByFirebaseID(ctx, c.Query("firebaseId"))
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "one of email, username, or firebaseId is required")
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	if u == nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		return
	}
	ok(c, http.StatusOK, u)
}
