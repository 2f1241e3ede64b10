package selfplay

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"

	"github.com/nelhage/isolation/ai"
	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/tei"
)

// Engine hands out one agent per game. Engines are not shared between
// workers.
type Engine interface {
	NewGame(cfg isolation.Config) (ai.Agent, error)
	Close()
}

type EngineFactory func() (Engine, error)

type localEngine struct {
	newAgent func() (ai.Agent, error)
}

func (l *localEngine) NewGame(isolation.Config) (ai.Agent, error) {
	return l.newAgent()
}

func (l *localEngine) Close() {}

// ParseEngine understands
//
//	random[:SEED]
//	search[:JSON]   JSON is merged over base
//	tei:COMMAND...  an external engine
func ParseEngine(spec string, base ai.SearchConfig) (EngineFactory, error) {
	kind, arg, _ := strings.Cut(spec, ":")
	switch kind {
	case "random":
		var seed int64
		if arg != "" {
			var err error
			if seed, err = strconv.ParseInt(arg, 10, 64); err != nil {
				return nil, fmt.Errorf("random seed %q: %w", arg, err)
			}
		}
		var mu sync.Mutex
		seeds := rand.New(rand.NewSource(seed))
		return func() (Engine, error) {
			return &localEngine{func() (ai.Agent, error) {
				mu.Lock()
				defer mu.Unlock()
				return ai.NewRandom(seeds.Int63()), nil
			}}, nil
		}, nil
	case "search":
		cfg := base
		if arg != "" {
			if err := json.Unmarshal([]byte(arg), &cfg); err != nil {
				return nil, fmt.Errorf("search config: %w", err)
			}
		}
		if _, err := ai.NewSearch(cfg); err != nil {
			return nil, err
		}
		return func() (Engine, error) {
			return &localEngine{func() (ai.Agent, error) {
				return ai.NewSearch(cfg)
			}}, nil
		}, nil
	case "tei":
		cmdline := strings.Fields(arg)
		if len(cmdline) == 0 {
			return nil, fmt.Errorf("tei: missing command")
		}
		return func() (Engine, error) {
			return tei.NewClient(cmdline)
		}, nil
	}
	return nil, fmt.Errorf("unknown engine: %q", spec)
}
