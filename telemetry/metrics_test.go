package telemetry_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/plus3/blockfall/telemetry"
	"github.com/plus3/blockfall/tetris"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountEvents(t *testing.T) {
	m := telemetry.NewMetrics()

	m.GameStarted("a")
	m.PieceSettled(tetris.KindI)
	m.PieceSettled(tetris.KindI)
	m.PieceSettled(tetris.KindO)
	m.RowsCleared([]int{18, 19})
	m.GameOver(2)

	count, err := testutil.GatherAndCount(m.Registry(), "blockfall_pieces_settled_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	values := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				values[mf.GetName()] += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			}
		}
	}

	assert.Equal(t, 1.0, values["blockfall_games_started_total"])
	assert.Equal(t, 3.0, values["blockfall_pieces_settled_total"])
	assert.Equal(t, 2.0, values["blockfall_rows_cleared_total"])
	assert.Equal(t, 1.0, values["blockfall_games_over_total"])
	assert.Equal(t, 2.0, values["blockfall_last_score"])
}

func TestMetricsObserveGame(t *testing.T) {
	m := telemetry.NewMetrics()
	game, err := tetris.NewGame(10, 20,
		tetris.WithRandomSource(tetris.NewRandomSource(11)),
		tetris.WithObserver(m),
	)
	require.NoError(t, err)
	game.StartGame()

	for game.State() == tetris.StatePlaying {
		game.AdvanceTick()
	}

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	var settled float64
	for _, mf := range families {
		if mf.GetName() != "blockfall_pieces_settled_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			settled += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(len(game.Settled())), settled)
}

func TestMetricsHandler(t *testing.T) {
	m := telemetry.NewMetrics()
	m.GameStarted("a")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "blockfall_games_started_total 1")
}
