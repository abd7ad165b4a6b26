package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkragh/cereald/internal/common"
	"github.com/mkragh/cereald/internal/server/models"
	"github.com/mkragh/cereald/internal/server/repositories/cereals"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// statusFromError maps the shared sentinel errors onto HTTP status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *HTTPServer) abortWithError(c *gin.Context, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": common.ErrorInternal.Error()})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *HTTPServer) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorValidation.Error()})
		return
	}

	session, err := s.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: session.Token, Expires: session.Expires})
}

// parseOptionalInt reads an optional integer query parameter. An unparseable
// value is rejected rather than silently ignored.
func parseOptionalInt(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", common.ErrorValidation, name)
	}
	return &v, nil
}

func parseListFilter(c *gin.Context) (cereals.Filter, error) {
	var filter cereals.Filter

	if mfr, ok := c.GetQuery("mfr"); ok && mfr != "" {
		filter.Mfr = &mfr
	}

	var err error
	if filter.CaloriesMin, err = parseOptionalInt(c, "caloriesMin"); err != nil {
		return filter, err
	}
	if filter.CaloriesMax, err = parseOptionalInt(c, "caloriesMax"); err != nil {
		return filter, err
	}
	if filter.SugarsMin, err = parseOptionalInt(c, "sugarsMin"); err != nil {
		return filter, err
	}
	if filter.SugarsMax, err = parseOptionalInt(c, "sugarsMax"); err != nil {
		return filter, err
	}

	filter.Sort = c.Query("sort")

	return filter, nil
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be an integer", common.ErrorValidation)
	}
	return id, nil
}

func (s *HTTPServer) listCereals(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	list, err := s.cereals.List(c.Request.Context(), filter)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *HTTPServer) getCereal(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	cereal, err := s.cereals.Get(c.Request.Context(), id)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, cereal)
}

func (s *HTTPServer) createCereal(c *gin.Context) {
	var cereal models.Cereal
	if err := c.ShouldBindJSON(&cereal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorValidation.Error()})
		return
	}

	created, err := s.cereals.Create(c.Request.Context(), &cereal)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/cereals/%d", created.ID))
	c.JSON(http.StatusCreated, created)
}

func (s *HTTPServer) updateCereal(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	var cereal models.Cereal
	if err := c.ShouldBindJSON(&cereal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrorValidation.Error()})
		return
	}

	if err := s.cereals.Update(c.Request.Context(), id, &cereal); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *HTTPServer) deleteCereal(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	if err := s.cereals.Delete(c.Request.Context(), id); err != nil {
		s.abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
