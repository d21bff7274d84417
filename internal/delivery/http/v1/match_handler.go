package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"go-matching-backend/internal/delivery/http/response"
	"go-matching-backend/internal/domain"
	"go-matching-backend/pkg/apperror"
	"go-matching-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const defaultPageLimit = 10

type MatchHandler struct {
	matchUC      domain.MatchUsecase
	validate     *validator.Validate
	maxBatchSize int
}

// NewMatchHandler registers match routes. Reads are public; runs and view
// marks go through the protected group.
func NewMatchHandler(public, protected *gin.RouterGroup, runLimiter gin.HandlerFunc, matchUC domain.MatchUsecase, validate *validator.Validate, maxBatchSize int) {
	handler := &MatchHandler{matchUC: matchUC, validate: validate, maxBatchSize: maxBatchSize}

	publicMatches := public.Group("/match")
	{
		publicMatches.GET("/seeker/:id", handler.ListForSeeker)
		publicMatches.GET("/candidate/:id", handler.ListForCandidate)
		publicMatches.GET("/:seekerId/:candidateId", handler.GetDetail)
	}

	protectedMatches := protected.Group("/match")
	{
		protectedMatches.POST("/run", runLimiter, handler.Run)
		protectedMatches.POST("/batch", runLimiter, handler.RunBatch)
		protectedMatches.POST("/:seekerId/:candidateId/view", handler.MarkViewed)
	}
}

type RunMatchRequest struct {
	SeekerID string `json:"seeker_id" validate:"required,profile_id"`
}

type RunBatchRequest struct {
	SeekerIDs []string `json:"seeker_ids" validate:"required,min=1,unique,dive,required,profile_id"`
}

// Run godoc
// @Summary      Run matching for one seeker
// @Description  Scores every candidate against the seeker and stores the results
// @Tags         match
// @Accept       json
// @Produce      json
// @Param        request  body      RunMatchRequest  true  "Seeker"
// @Success      200      {object}  response.Response{data=domain.RunResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Failure      504      {object}  response.Response
// @Router       /match/run [post]
// @Security     BearerAuth
func (h *MatchHandler) Run(c *gin.Context) {
	var req RunMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	res, err := h.matchUC.RunMatch(c.Request.Context(), req.SeekerID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Generated %d matches", len(res.Produced)), res)
}

// RunBatch godoc
// @Summary      Run matching for several seekers
// @Description  Runs seekers one after another; per-seeker failures are reported, not fatal
// @Tags         match
// @Accept       json
// @Produce      json
// @Param        request  body      RunBatchRequest  true  "Seekers"
// @Success      200      {object}  response.Response{data=domain.BatchRunResult}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Router       /match/batch [post]
// @Security     BearerAuth
func (h *MatchHandler) RunBatch(c *gin.Context) {
	var req RunBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}
	if h.maxBatchSize > 0 && len(req.SeekerIDs) > h.maxBatchSize {
		c.Error(apperror.BadRequest(fmt.Sprintf("Seeker IDs: must contain at most %d items", h.maxBatchSize)))
		return
	}

	res, err := h.matchUC.RunMatchBatch(c.Request.Context(), req.SeekerIDs)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, fmt.Sprintf("Processed %d seekers", len(res.Results)+len(res.Failed)), res)
}

// ListForSeeker godoc
// @Summary      Ranked matches of a seeker
// @Tags         match
// @Produce      json
// @Param        id     path      string  true   "Seeker ID"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Page size"    default(10)
// @Success      200    {object}  response.Response{data=domain.Page}
// @Header       200    {integer} X-Total-Count "Total records"
// @Failure      400    {object}  response.Response
// @Router       /match/seeker/{id} [get]
func (h *MatchHandler) ListForSeeker(c *gin.Context) {
	id, page, limit, ok := h.listParams(c)
	if !ok {
		return
	}

	res, err := h.matchUC.GetMatchesForSeeker(c.Request.Context(), id, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Page(c, http.StatusOK, "Matches retrieved", res)
}

// ListForCandidate godoc
// @Summary      Seekers matched to a candidate
// @Tags         match
// @Produce      json
// @Param        id     path      string  true   "Candidate ID"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Page size"    default(10)
// @Success      200    {object}  response.Response{data=domain.Page}
// @Header       200    {integer} X-Total-Count "Total records"
// @Failure      400    {object}  response.Response
// @Router       /match/candidate/{id} [get]
func (h *MatchHandler) ListForCandidate(c *gin.Context) {
	id, page, limit, ok := h.listParams(c)
	if !ok {
		return
	}

	res, err := h.matchUC.GetMatchesForCandidate(c.Request.Context(), id, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	response.Page(c, http.StatusOK, "Matches retrieved", res)
}

// GetDetail godoc
// @Summary      Match detail
// @Description  Returns one match with its explanation. Does not mark it viewed.
// @Tags         match
// @Produce      json
// @Param        seekerId     path      string  true  "Seeker ID"
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response{data=domain.MatchDetail}
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /match/{seekerId}/{candidateId} [get]
func (h *MatchHandler) GetDetail(c *gin.Context) {
	seekerID, candidateID, ok := h.pairParams(c)
	if !ok {
		return
	}

	res, err := h.matchUC.GetMatchDetail(c.Request.Context(), seekerID, candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match retrieved", res)
}

// MarkViewed godoc
// @Summary      Mark a match viewed
// @Description  Sets viewed_at on first call; later calls keep the original time
// @Tags         match
// @Produce      json
// @Param        seekerId     path      string  true  "Seeker ID"
// @Param        candidateId  path      string  true  "Candidate ID"
// @Success      200          {object}  response.Response{data=domain.MatchRecord}
// @Failure      401          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Router       /match/{seekerId}/{candidateId}/view [post]
// @Security     BearerAuth
func (h *MatchHandler) MarkViewed(c *gin.Context) {
	seekerID, candidateID, ok := h.pairParams(c)
	if !ok {
		return
	}

	res, err := h.matchUC.MarkMatchViewed(c.Request.Context(), seekerID, candidateID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match marked as viewed", res)
}

func (h *MatchHandler) listParams(c *gin.Context) (id string, page, limit int, ok bool) {
	id = c.Param("id")
	if err := h.validate.Var(id, "profile_id"); err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return "", 0, 0, false
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.Error(apperror.BadRequest("page must be an integer"))
		return "", 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil {
		c.Error(apperror.BadRequest("limit must be an integer"))
		return "", 0, 0, false
	}
	return id, page, limit, true
}

func (h *MatchHandler) pairParams(c *gin.Context) (seekerID, candidateID string, ok bool) {
	seekerID, candidateID = c.Param("seekerId"), c.Param("candidateId")
	if h.validate.Var(seekerID, "profile_id") != nil || h.validate.Var(candidateID, "profile_id") != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return "", "", false
	}
	return seekerID, candidateID, true
}
