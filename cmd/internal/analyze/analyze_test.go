package analyze

import (
	"bytes"
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/isotest"
)

func command(t *testing.T, args ...string) *Command {
	var c Command
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	c.SetFlags(fs)
	require.NoError(t, fs.Parse(args))
	return &c
}

func TestAnalyzeSearch(t *testing.T) {
	c := command(t, "-method", "alphabeta", "-max-depth", "4")
	var out bytes.Buffer
	require.NoError(t, c.analyze(context.Background(), &out, isotest.Board(".../.../1.2 1 3")))
	s := out.String()
	assert.Contains(t, s, " move=1,2\n")
	assert.Contains(t, s, "Resulting position:")
}

func TestAnalyzeEvaluate(t *testing.T) {
	c := command(t, "-evaluate", "-explain", "-eval", "late")
	var out bytes.Buffer
	require.NoError(t, c.analyze(context.Background(), &out, isotest.Board("1../..x/..2 1 2")))
	s := out.String()
	assert.Contains(t, s, " Val=-997\n")
	assert.Contains(t, s, "phase")
	assert.NotContains(t, s, "AI analysis")
}

func TestAnalyzeNoMoves(t *testing.T) {
	c := command(t, "-quiet")
	var out bytes.Buffer
	require.NoError(t, c.analyze(context.Background(), &out, isotest.Board("1../..x/.x2 1 3")))
	assert.Contains(t, out.String(), " move=none\n")
	assert.NotContains(t, out.String(), "Resulting position:")
}

func TestApplyVariation(t *testing.T) {
	b, err := applyVariation(isolation.New(isolation.Config{Width: 5, Height: 5}), "0,0 4,4 1,2")
	require.NoError(t, err)
	assert.Equal(t, isotest.Play(5, 5, "0,0 4,4 1,2").Hash(), b.Hash())

	_, err = applyVariation(isolation.New(isolation.Config{Width: 5, Height: 5}), "0,0 0,0")
	assert.ErrorIs(t, err, isolation.ErrOccupied)
	_, err = applyVariation(isolation.New(isolation.Config{}), "zz")
	assert.Error(t, err)
}
