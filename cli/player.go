package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/nelhage/isolation/isolation"
)

func NewCLIPlayer(out io.Writer, in *bufio.Reader) Player {
	return &cliPlayer{out, in}
}

type cliPlayer struct {
	out io.Writer
	in  *bufio.Reader
}

func (c *cliPlayer) GetMove(b *isolation.Board) isolation.Move {
	for {
		fmt.Fprintf(c.out, "%s> ", b.Active())
		line, err := c.in.ReadString('\n')
		if err != nil {
			panic(err)
		}
		m, err := isolation.ParseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, "parse error: ", err)
			continue
		}
		return m
	}
}
