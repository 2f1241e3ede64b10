package ai

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodText(t *testing.T) {
	for _, m := range []Method{Minimax, AlphaBeta} {
		bs, err := m.MarshalText()
		require.NoError(t, err)
		var got Method
		require.NoError(t, got.UnmarshalText(bs))
		assert.Equal(t, m, got)
	}
	_, err := ParseMethod("negamax")
	assert.Error(t, err)
	_, err = Method(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Method(9)", Method(9).String())
}

func TestSearchConfigJSON(t *testing.T) {
	var cfg SearchConfig
	err := json.Unmarshal([]byte(`{
  "depth": 2,
  "max_depth": 6,
  "method": "alphabeta",
  "threshold": 20000000,
  "eval": "late"
}`), &cfg)
	require.NoError(t, err)
	assert.Equal(t, SearchConfig{
		Depth:     2,
		MaxDepth:  6,
		Method:    AlphaBeta,
		Threshold: 20 * time.Millisecond,
		Eval:      "late",
	}, cfg)

	bs, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"method":"alphabeta"`)

	err = json.Unmarshal([]byte(`{"method": "mcts"}`), &cfg)
	assert.Error(t, err)
}
