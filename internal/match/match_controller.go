package match

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
)

// MatchController handles scoring HTTP requests
type MatchController struct {
	service *Service
}

// NewMatchController creates a new match controller
func NewMatchController(service *Service) *MatchController {
	return &MatchController{service: service}
}

// --- DTOs for requests ---

// PlayingXIRequest names one team's eleven.
type PlayingXIRequest struct {
	TeamID  uint          `json:"team_id" binding:"required"`
	Players []PlayerInput `json:"players" binding:"required,min=1,max=11,dive"`
}

// TossRequest records who won the toss and what they chose.
type TossRequest struct {
	WinnerTeamID uint         `json:"winner_team_id" binding:"required"`
	Decision     TossDecision `json:"decision" binding:"required,oneof=bat bowl"`
}

// OpeningBattersRequest puts the first pair at the crease.
type OpeningBattersRequest struct {
	StrikerID    uint `json:"striker_id" binding:"required"`
	NonStrikerID uint `json:"non_striker_id" binding:"required,nefield=StrikerID"`
}

// NextBatterRequest sends in a replacement after a wicket.
type NextBatterRequest struct {
	PlayerID uint `json:"player_id" binding:"required"`
}

// BowlerRequest names the bowler for the next over.
type BowlerRequest struct {
	BowlerID uint `json:"bowler_id" binding:"required"`
}

// BowlerCheck is the dry-run answer for a bowler choice.
type BowlerCheck struct {
	Eligible bool   `json:"eligible"`
	Kind     string `json:"kind,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// --- Helpers ---

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		responses.KindErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// StatusFor maps a scoring error onto its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrIllegalTransition):
		return http.StatusConflict
	case errors.Is(err, ErrPlayerNotEligible), errors.Is(err, ErrRefereeRuleViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (mc *MatchController) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	var domainErr *Error
	if errors.As(err, &domainErr) {
		msg = domainErr.Reason
	} else if status == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "Internal server error"
	}
	responses.KindErrorResponse(c, status, KindName(err), msg)
}

// --- Fixtures ---

// CreateMatch godoc
// @Summary Create a fixture
// @Description Register a match shell between two teams. Tournament fixtures carry tournament_id.
// @Tags matches
// @Accept json
// @Produce json
// @Param match body FixtureInput true "Fixture"
// @Success 201 {object} responses.Envelope{data=Match}
// @Failure 400 {object} responses.ErrorBody
// @Failure 401 {object} responses.ErrorBody
// @Router /matches [post]
// @Security Bearer
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req FixtureInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	m, err := mc.service.CreateFixture(c.Request.Context(), req)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, m)
}

// GetMatch godoc
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=Match}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	m, err := mc.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, m)
}

// SetPlayingXI godoc
// @Summary Name a team's playing XI
// @Description Replaces the team's nominations. Rejected once the match is live.
// @Tags matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param xi body PlayingXIRequest true "Playing XI"
// @Success 200 {object} responses.Envelope
// @Failure 400 {object} responses.ErrorBody
// @Failure 404 {object} responses.ErrorBody
// @Failure 409 {object} responses.ErrorBody
// @Router /matches/{id}/playing-xi [put]
// @Security Bearer
func (mc *MatchController) SetPlayingXI(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PlayingXIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	if err := mc.service.SetPlayingXI(c.Request.Context(), id, req.TeamID, req.Players); err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Playing XI saved", "team_id": req.TeamID, "players": len(req.Players)})
}

// --- Lifecycle ---

// RecordToss godoc
// @Summary Record the toss
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param toss body TossRequest true "Toss"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 400 {object} responses.ErrorBody
// @Failure 409 {object} responses.ErrorBody
// @Router /matches/{id}/toss [post]
// @Security Bearer
func (mc *MatchController) RecordToss(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	sb, err := mc.service.RecordToss(c.Request.Context(), id, req.WinnerTeamID, req.Decision)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// StartMatch godoc
// @Summary Start the match
// @Description Moves a tossed match to live. Starting a live match is a no-op.
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 409 {object} responses.ErrorBody
// @Router /matches/{id}/start [post]
// @Security Bearer
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sb, err := mc.service.StartMatch(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// SetOpeningBatters godoc
// @Summary Set the opening pair
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param batters body OpeningBattersRequest true "Openers"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 409 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /matches/{id}/batters/opening [post]
// @Security Bearer
func (mc *MatchController) SetOpeningBatters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req OpeningBattersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	sb, err := mc.service.SetOpeningBatters(c.Request.Context(), id, req.StrikerID, req.NonStrikerID)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// SetNextBatter godoc
// @Summary Send in the next batter
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param batter body NextBatterRequest true "Incoming batter"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 409 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /matches/{id}/batters/next [post]
// @Security Bearer
func (mc *MatchController) SetNextBatter(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req NextBatterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	sb, err := mc.service.SetNextBatter(c.Request.Context(), id, req.PlayerID)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// SelectBowler godoc
// @Summary Select the bowler for the next over
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param bowler body BowlerRequest true "Bowler"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 409 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /matches/{id}/bowler [post]
// @Security Bearer
func (mc *MatchController) SelectBowler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	sb, err := mc.service.SelectBowler(c.Request.Context(), id, req.BowlerID)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// ValidateBowler godoc
// @Summary Check a bowler choice without selecting
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param bowler body BowlerRequest true "Bowler"
// @Success 200 {object} responses.Envelope{data=BowlerCheck}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/bowler/validate [post]
// @Security Bearer
func (mc *MatchController) ValidateBowler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BowlerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	err := mc.service.ValidateBowler(c.Request.Context(), id, req.BowlerID)
	var domainErr *Error
	switch {
	case err == nil:
		responses.SuccessResponse(c, http.StatusOK, BowlerCheck{Eligible: true})
	case errors.Is(err, ErrNotFound), !errors.As(err, &domainErr):
		mc.fail(c, err)
	default:
		responses.SuccessResponse(c, http.StatusOK, BowlerCheck{Kind: KindName(err), Reason: domainErr.Reason})
	}
}

// RecordBall godoc
// @Summary Record one delivery
// @Description Validates and applies a delivery. Returns the stored ball, rotation and the new scoreboard.
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param ball body BallInput true "Delivery"
// @Success 201 {object} responses.Envelope{data=RecordBallResult}
// @Failure 400 {object} responses.ErrorBody
// @Failure 409 {object} responses.ErrorBody
// @Failure 422 {object} responses.ErrorBody
// @Router /matches/{id}/balls [post]
// @Security Bearer
func (mc *MatchController) RecordBall(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req BallInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}
	var recordedBy *uint
	if uid, err := mw.GetUserIDFromContext(c); err == nil {
		recordedBy = &uid
	}
	res, err := mc.service.RecordBall(c.Request.Context(), id, req, recordedBy)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, res)
}

// EndInnings godoc
// @Summary Close the current innings
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 409 {object} responses.ErrorBody
// @Router /matches/{id}/innings/end [post]
// @Security Bearer
func (mc *MatchController) EndInnings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sb, err := mc.service.EndInnings(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// CompleteMatch godoc
// @Summary Complete the match
// @Description Finalizes the result and feeds tournament standings.
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=MatchCompleted}
// @Failure 409 {object} responses.ErrorBody
// @Router /matches/{id}/complete [post]
// @Security Bearer
func (mc *MatchController) CompleteMatch(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	evt, err := mc.service.CompleteMatch(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, evt)
}

// --- Reads ---

// GetScoreboard godoc
// @Summary Current scoreboard
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=Scoreboard}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/scoreboard [get]
func (mc *MatchController) GetScoreboard(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sb, err := mc.service.GetScoreboard(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, sb)
}

// ListBalls godoc
// @Summary Ball-by-ball ledger
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} responses.Envelope{data=[]BallEvent}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/balls [get]
func (mc *MatchController) ListBalls(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	balls, err := mc.service.ListBalls(c.Request.Context(), id)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, balls)
}

// GetAvailableBatters godoc
// @Summary Batters who can still come in
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Param teamId path int true "Team ID"
// @Success 200 {object} responses.Envelope{data=[]Roster}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/teams/{teamId}/available-batters [get]
func (mc *MatchController) GetAvailableBatters(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseID(c, "teamId")
	if !ok {
		return
	}
	out, err := mc.service.GetAvailableBatters(c.Request.Context(), id, teamID)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, out)
}

// GetAvailableBowlers godoc
// @Summary Bowlers who may bowl the next over
// @Tags scoring
// @Produce json
// @Param id path int true "Match ID"
// @Param teamId path int true "Team ID"
// @Param exclude query int false "Player to leave out"
// @Success 200 {object} responses.Envelope{data=[]Roster}
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/teams/{teamId}/available-bowlers [get]
func (mc *MatchController) GetAvailableBowlers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseID(c, "teamId")
	if !ok {
		return
	}
	var exclude *uint
	if raw := c.Query("exclude"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			responses.KindErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid exclude")
			return
		}
		u := uint(v)
		exclude = &u
	}
	out, err := mc.service.GetAvailableBowlers(c.Request.Context(), id, teamID, exclude)
	if err != nil {
		mc.fail(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, out)
}
