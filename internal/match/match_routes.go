package match

import (
	"github.com/gin-gonic/gin"

	mw "github.com/DhavalSuthar-24/crease/internal/middleware"
)

// MatchRoutes sets up all match-related routes. Reads are public; anything
// that changes a match needs a scorer token.
func MatchRoutes(router *gin.RouterGroup, service *Service, jwtSecret string) {
	matchController := NewMatchController(service)

	public := router.Group("/matches")
	{
		public.GET("/:id", matchController.GetMatch)
		public.GET("/:id/scoreboard", matchController.GetScoreboard)
		public.GET("/:id/balls", matchController.ListBalls)
		public.GET("/:id/teams/:teamId/available-batters", matchController.GetAvailableBatters)
		public.GET("/:id/teams/:teamId/available-bowlers", matchController.GetAvailableBowlers)
	}

	authRoutes := router.Group("/matches")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret))
	{
		authRoutes.POST("", matchController.CreateMatch)
		authRoutes.PUT("/:id/playing-xi", matchController.SetPlayingXI)

		// Match lifecycle
		authRoutes.POST("/:id/toss", matchController.RecordToss)
		authRoutes.POST("/:id/start", matchController.StartMatch)
		authRoutes.POST("/:id/innings/end", matchController.EndInnings)
		authRoutes.POST("/:id/complete", matchController.CompleteMatch)

		// Ball by ball
		authRoutes.POST("/:id/batters/opening", matchController.SetOpeningBatters)
		authRoutes.POST("/:id/batters/next", matchController.SetNextBatter)
		authRoutes.POST("/:id/bowler", matchController.SelectBowler)
		authRoutes.POST("/:id/bowler/validate", matchController.ValidateBowler)
		authRoutes.POST("/:id/balls", matchController.RecordBall)
	}
}
