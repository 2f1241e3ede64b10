package analyze

import (
	"context"
	"fmt"
	"io"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/cli"
	"github.com/nelhage/isolation/isolation"
)

type analysis struct {
	out     io.Writer
	quiet   bool
	eval    bool
	explain bool
	search  *ai.SearchAI
}

func (a *analysis) Analyze(ctx context.Context, b *isolation.Board) {
	if !a.quiet {
		cli.RenderBoard(nil, a.out, b)
		if a.explain {
			ai.ExplainScore(a.out, b, b.Active())
		}
	}
	if a.eval {
		val := a.search.Config().Evaluate.Evaluate(b, b.Active())
		fmt.Fprintf(a.out, " Val=%g\n", val)
		return
	}
	m, val, st := a.search.Analyze(ctx, b)
	fmt.Fprintf(a.out, "AI analysis:\n")
	fmt.Fprintf(a.out, " move=%s\n", isolation.FormatMove(m))
	fmt.Fprintf(a.out, " value=%g depth=%d visited=%d evaluated=%d cutoffs=%d time=%s\n",
		val, st.Depth, st.Visited, st.Evaluated, st.Cutoffs, st.Elapsed)
	fmt.Fprintf(a.out, "[%s]\n", isolation.FormatText(b))
	fmt.Fprintln(a.out)

	if m.IsNone() || a.quiet {
		return
	}
	next, err := b.Move(m)
	if err != nil {
		fmt.Fprintf(a.out, "illegal move: %s: %v\n", m, err)
		return
	}
	fmt.Fprintln(a.out, "Resulting position:")
	cli.RenderBoard(nil, a.out, next)
	if a.explain {
		ai.ExplainScore(a.out, next, b.Active())
	}
	fmt.Fprintln(a.out)
}
