package standings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/crease/internal/match"
	"github.com/DhavalSuthar-24/crease/pkg/token"
)

func lionsBeatTigers(matchID uint) match.MatchCompleted {
	return completed(matchID,
		match.InningsTotal{TeamID: 1, Runs: 180, Wickets: 7, LegalBalls: 120},
		match.InningsTotal{TeamID: 2, Runs: 150, Wickets: 10, LegalBalls: 120},
		uintPtr(1),
	)
}

func TestHandleMatchCompletedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStandingsRepository(), nil)
	evt := lionsBeatTigers(11)

	require.NoError(t, svc.HandleMatchCompleted(ctx, evt))
	require.NoError(t, svc.HandleMatchCompleted(ctx, evt), "redelivery")

	rows, err := svc.GetTable(ctx, 9)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].TeamID)
	assert.Equal(t, 1, rows[0].Played)
	assert.Equal(t, 2, rows[0].Points)
	assert.Equal(t, 1.5, rows[0].NetRunRate)
	assert.Equal(t, uint(2), rows[1].TeamID)
	assert.Equal(t, 1, rows[1].Played)
	assert.Equal(t, 1, rows[1].Lost)
	assert.Equal(t, -1.5, rows[1].NetRunRate)
}

func TestSecondMatchAccumulates(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStandingsRepository(), nil)
	require.NoError(t, svc.HandleMatchCompleted(ctx, lionsBeatTigers(11)))

	rematch := completed(12,
		match.InningsTotal{TeamID: 2, Runs: 160, Wickets: 5, LegalBalls: 120},
		match.InningsTotal{TeamID: 1, Runs: 160, Wickets: 9, LegalBalls: 120},
		nil,
	)
	require.NoError(t, svc.HandleMatchCompleted(ctx, rematch))

	rows, err := svc.GetTable(ctx, 9)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(1), rows[0].TeamID)
	assert.Equal(t, 3, rows[0].Points)
	assert.Equal(t, 2, rows[0].Played)
	assert.Equal(t, 1, rows[0].Tied)
	assert.Equal(t, "40.0", rows[0].OversFaced)
	assert.Equal(t, 1, rows[1].Points)
}

func TestFriendlyMatchSkipsStandings(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStandingsRepository()
	svc := NewService(repo, nil)
	evt := lionsBeatTigers(11)
	evt.TournamentID = nil

	require.NoError(t, svc.HandleMatchCompleted(ctx, evt))
	rows, err := svc.GetTable(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestHandleMatchCompletedRejectsMissingTeams(t *testing.T) {
	svc := NewService(NewMemoryStandingsRepository(), nil)
	evt := lionsBeatTigers(11)
	evt.Innings[1].TeamID = 0
	err := svc.HandleMatchCompleted(context.Background(), evt)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestEnrollIsZeroedAndRepeatable(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStandingsRepository(), nil)

	first, err := svc.Enroll(ctx, 9, 4)
	require.NoError(t, err)
	again, err := svc.Enroll(ctx, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Zero(t, again.Played)

	_, err = svc.Enroll(ctx, 0, 4)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.HandleMatchCompleted(ctx, lionsBeatTigers(11)))
	rows, err := svc.GetTable(ctx, 9)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, uint(4), rows[1].TeamID, "zero NRR sits between +1.5 and -1.5")
}

func TestStandingsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "standings-secret"
	svc := NewService(NewMemoryStandingsRepository(), nil)
	router := gin.New()
	StandingsRoutes(router.Group("/api"), svc, secret)

	serve := func(method, path, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusUnauthorized, serve(http.MethodPost, "/api/tournaments/9/teams/4/enroll", "").Code)

	tok, err := token.GenerateJWT(5, "organizer", secret, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, serve(http.MethodPost, "/api/tournaments/9/teams/4/enroll", tok).Code)
	assert.Equal(t, http.StatusBadRequest, serve(http.MethodPost, "/api/tournaments/9/teams/x/enroll", tok).Code)

	w := serve(http.MethodGet, "/api/tournaments/9/standings", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []Row `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, uint(4), body.Data[0].TeamID)
	assert.Equal(t, "0.0", body.Data[0].OversFaced)

	assert.Equal(t, http.StatusBadRequest, serve(http.MethodGet, "/api/tournaments/0/standings", "").Code)
}
