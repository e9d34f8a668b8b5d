package standings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
)

// StandingsController handles point table requests
type StandingsController struct {
	service *Service
}

func NewStandingsController(service *Service) *StandingsController {
	return &StandingsController{service: service}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		responses.KindErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// GetTable godoc
// @Summary Tournament point table
// @Description Ranked by points, then net run rate, then wins.
// @Tags standings
// @Produce json
// @Param id path int true "Tournament ID"
// @Success 200 {object} responses.Envelope{data=[]Row}
// @Failure 400 {object} responses.ErrorBody
// @Router /tournaments/{id}/standings [get]
func (sc *StandingsController) GetTable(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rows, err := sc.service.GetTable(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to load standings")
		return
	}
	responses.SuccessResponse(c, http.StatusOK, rows)
}

// Enroll godoc
// @Summary Enroll a team in the point table
// @Tags standings
// @Produce json
// @Param id path int true "Tournament ID"
// @Param teamId path int true "Team ID"
// @Success 201 {object} responses.Envelope{data=StandingsEntry}
// @Failure 400 {object} responses.ErrorBody
// @Router /tournaments/{id}/teams/{teamId}/enroll [post]
// @Security Bearer
func (sc *StandingsController) Enroll(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	teamID, ok := parseID(c, "teamId")
	if !ok {
		return
	}
	entry, err := sc.service.Enroll(c.Request.Context(), id, teamID)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			responses.KindErrorResponse(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		_ = c.Error(err)
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to enroll team")
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, entry)
}

// StandingsRoutes registers the point table endpoints.
func StandingsRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) {
	controller := NewStandingsController(service)

	tournaments := router.Group("/tournaments")
	tournaments.GET("/:id/standings", controller.GetTable)
	tournaments.POST("/:id/teams/:teamId/enroll", mw.AuthMiddleware(jwtSecret), controller.Enroll)
}
