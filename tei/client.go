package tei

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
)

// Client drives an external engine that speaks the protocol Engine
// implements.
type Client struct {
	cmd *exec.Cmd

	stdinPipe  io.WriteCloser
	stdoutPipe io.ReadCloser

	read  *bufio.Reader
	write io.Writer

	gameid int
}

func NewClient(cmdline []string) (*Client, error) {
	cmd := &exec.Cmd{
		Args: cmdline,
	}
	if path, err := exec.LookPath(cmdline[0]); err != nil {
		return nil, err
	} else {
		cmd.Path = path
	}

	cl := &Client{
		cmd: cmd,
	}

	if stdin, err := cmd.StdinPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdinPipe = stdin
		cl.write = stdin
	}

	if stdout, err := cmd.StdoutPipe(); err != nil {
		cl.Close()
		return nil, err
	} else {
		cl.stdoutPipe = stdout
		cl.read = bufio.NewReader(stdout)
	}

	if err := cl.cmd.Start(); err != nil {
		cl.Close()
		return nil, err
	}

	if err := cl.handshake(); err != nil {
		cl.Close()
		return nil, err
	}
	return cl, nil
}

// NewStreamClient talks to an engine over an existing pair of streams.
func NewStreamClient(r io.Reader, w io.Writer) (*Client, error) {
	cl := &Client{
		read:  bufio.NewReader(r),
		write: w,
	}
	if err := cl.handshake(); err != nil {
		return nil, err
	}
	return cl, nil
}

func (c *Client) handshake() error {
	_, err := c.sendCommand("iei", "ieiok")
	return err
}

func (c *Client) NewGame(cfg isolation.Config) (ai.Agent, error) {
	c.gameid += 1
	cmd := fmt.Sprintf("ieinewgame %dx%d", cfg.Width, cfg.Height)
	if _, err := c.sendCommand(cmd, ""); err != nil {
		return nil, err
	}
	return &player{
		client: c,
		gameid: c.gameid,
	}, nil
}

func (c *Client) Close() {
	if c.write != nil {
		c.sendCommand("quit", "")
	}
	if c.stdinPipe != nil {
		c.stdinPipe.Close()
	}
	if c.stdoutPipe != nil {
		c.stdoutPipe.Close()
	}
	if c.cmd != nil && c.cmd.Process != nil {
		c.cmd.Wait()
	}
}

func (c *Client) sendCommand(cmd string, expect string) ([]string, error) {
	if _, err := fmt.Fprintln(c.write, cmd); err != nil {
		return nil, err
	}
	if expect == "" {
		return nil, nil
	}

	for {
		line, err := c.read.ReadString('\n')
		if err != nil {
			return nil, err
		}
		words := strings.Fields(line)
		if len(words) > 0 && words[0] == expect {
			return words, nil
		}
	}
}

type player struct {
	client *Client
	gameid int
}

func (p *player) GetMove(ctx context.Context, b *isolation.Board) isolation.Move {
	if p.gameid != p.client.gameid {
		panic("bad gameid: calling GetMove on a dead player")
	}
	_, err := p.client.sendCommand(fmt.Sprintf("position text %s", isolation.FormatText(b)), "")
	if err != nil {
		panic(fmt.Sprintf("send position: %v", err))
	}
	goCmd := "go"
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left < time.Millisecond {
			left = time.Millisecond
		}
		goCmd = fmt.Sprintf("%s movetime %s", goCmd, formatTime(left))
	}
	bestmove, err := p.client.sendCommand(goCmd, "bestmove")
	if err != nil {
		panic(fmt.Sprintf("send go: %v", err))
	}
	if len(bestmove) != 2 {
		panic("bad bestmove")
	}
	m, err := isolation.ParseMove(bestmove[1])
	if err != nil {
		panic(fmt.Sprintf("unable to parse move: %q", bestmove[1]))
	}
	return m
}
