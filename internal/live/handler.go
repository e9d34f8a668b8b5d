package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/DhavalSuthar-24/crease/internal/match"
	responses "github.com/DhavalSuthar-24/crease/pkg/matchresponse"
)

// ScoreSource supplies the snapshot a viewer sees on connect.
type ScoreSource interface {
	GetScoreboard(ctx context.Context, matchID uint) (*match.Scoreboard, error)
}

type Handler struct {
	hub          *Hub
	scores       ScoreSource
	writeTimeout time.Duration
	origins      []string
	logger       *zap.Logger
}

func NewHandler(hub *Hub, scores ScoreSource, writeTimeout time.Duration, origins []string, logger *zap.Logger) *Handler {
	if writeTimeout <= 0 {
		writeTimeout = 3 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{hub: hub, scores: scores, writeTimeout: writeTimeout, origins: origins, logger: logger}
}

// Stream godoc
// @Summary Live scoreboard stream
// @Description Websocket. Sends the current scoreboard, then one score_updated frame per committed command.
// @Tags live
// @Param id path int true "Match ID"
// @Success 101 {object} Message
// @Failure 404 {object} responses.ErrorBody
// @Router /matches/{id}/live [get]
func (h *Handler) Stream(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		responses.KindErrorResponse(c, http.StatusBadRequest, "validation_error", "Invalid id")
		return
	}
	matchID := uint(id)

	// Subscribe before reading the snapshot so nothing committed in between is lost.
	sub := h.hub.Subscribe(matchID)
	defer sub.Close()

	sb, err := h.scores.GetScoreboard(c.Request.Context(), matchID)
	if err != nil {
		var domainErr *match.Error
		msg := "Internal server error"
		if errors.As(err, &domainErr) {
			msg = domainErr.Reason
		}
		responses.KindErrorResponse(c, match.StatusFor(err), match.KindName(err), msg)
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Info("websocket accept failed", zap.Uint("match_id", matchID), zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream ended")

	// Viewers never send anything; CloseRead handles control frames and
	// cancels ctx when the peer goes away.
	ctx := conn.CloseRead(c.Request.Context())

	first, err := json.Marshal(Message{Type: TypeScoreUpdated, MatchID: matchID, Scoreboard: *sb})
	if err != nil {
		h.logger.Error("encode snapshot", zap.Uint("match_id", matchID), zap.Error(err))
		return
	}
	if err := h.write(ctx, conn, first); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusGoingAway, "server shutting down")
				return
			}
			if err := h.write(ctx, conn, frame); err != nil {
				h.logger.Debug("viewer write failed", zap.String("viewer_id", sub.ID), zap.Error(err))
				return
			}
		}
	}
}

func (h *Handler) write(ctx context.Context, conn *websocket.Conn, frame []byte) error {
	ctx, cancel := context.WithTimeout(ctx, h.writeTimeout)
	defer cancel()
	return conn.Write(ctx, websocket.MessageText, frame)
}

// LiveRoutes registers the viewer stream. It is public.
func LiveRoutes(router *gin.RouterGroup, handler *Handler) {
	router.GET("/matches/:id/live", handler.Stream)
}
