package canonicalize

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	c := &Command{width: 5, height: 5}
	require.NoError(t, c.run(&buf, "4,4 4,0"))
	assert.Equal(t, "0,0 0,4\n", buf.String())

	buf.Reset()
	c = &Command{width: 3, height: 3, board: true}
	require.NoError(t, c.run(&buf, "2,2"))
	assert.Equal(t, "0,0\n1../.../... 2 1\n", buf.String())

	assert.Error(t, (&Command{width: 5, height: 5}).run(&buf, "0,0 0,0"))
	assert.Error(t, (&Command{width: 0, height: 5}).run(&buf, "0,0"))
}
