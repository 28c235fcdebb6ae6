package scoreboardintegrationtests

import (
	"strconv"
	"testing"

	scoreboardservice "github.com/Black-And-White-Club/scoreboard/app/modules/scoreboard/application"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_LimitReturnsNewestFirst(t *testing.T) {
	deps := SetupTestScoreboardService(t, nil)

	for i := 1; i <= 10; i++ {
		_, err := deps.Service.UpdateScore(deps.Ctx, scoreboardservice.UpdateScoreRequest{
			Player: "jared", CategoryID: "classic", Score: strconv.Itoa(i),
		})
		require.NoError(t, err)
	}

	history, err := deps.Service.History(deps.Ctx, scoreboardservice.HistoryQuery{Limit: 5})
	require.NoError(t, err)
	require.Len(t, history, 5)
	for i, entry := range history {
		assert.Equal(t, int32(10-i), entry.Score)
		assert.Equal(t, int32(9-i), entry.PreviousScore)
	}
}

func TestHistory_Filters(t *testing.T) {
	deps := SetupTestScoreboardService(t, nil)

	edits := []scoreboardservice.UpdateScoreRequest{
		{Player: "jared", CategoryID: "classic", Score: "1"},
		{Player: "steve", CategoryID: "classic", Score: "2"},
		{Player: "jared", CategoryID: "gates", Score: "3"},
	}
	for _, req := range edits {
		_, err := deps.Service.UpdateScore(deps.Ctx, req)
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query scoreboardservice.HistoryQuery
		want  []int32
	}{
		{name: "all", query: scoreboardservice.HistoryQuery{Limit: 100}, want: []int32{3, 2, 1}},
		{name: "category", query: scoreboardservice.HistoryQuery{Limit: 100, CategoryID: "classic"}, want: []int32{2, 1}},
		{name: "player", query: scoreboardservice.HistoryQuery{Limit: 100, Player: "jared"}, want: []int32{3, 1}},
		{name: "both", query: scoreboardservice.HistoryQuery{Limit: 100, CategoryID: "classic", Player: "steve"}, want: []int32{2}},
		{name: "zero limit", query: scoreboardservice.HistoryQuery{Limit: 0}, want: []int32{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := deps.Service.History(deps.Ctx, tt.query)
			require.NoError(t, err)
			got := make([]int32, 0, len(history))
			for _, e := range history {
				got = append(got, e.Score)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeedCategories_KeepsExistingScores(t *testing.T) {
	deps := SetupTestScoreboardService(t, nil)

	_, err := deps.Service.UpdateScore(deps.Ctx, scoreboardservice.UpdateScoreRequest{
		Player: "steve", CategoryID: "boss_rush", Score: "99",
	})
	require.NoError(t, err)

	require.NoError(t, deps.Service.SeedCategories(deps.Ctx))

	view, err := deps.Service.GetScore(deps.Ctx, "boss_rush")
	require.NoError(t, err)
	assert.Equal(t, int32(99), view.Steve)
	require.NoError(t, deps.Service.Health(deps.Ctx))
}
