package opt

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nelhage/isolation/ai"
)

// EnvPrefix namespaces environment overrides, e.g. ISOLATION_DEPTH.
const EnvPrefix = "ISOLATION"

type Search struct {
	Debug     int
	Depth     int
	MaxDepth  int
	Iterative bool
	Method    string
	Threshold time.Duration
	Eval      string
	Config    string

	fs     *flag.FlagSet
	method ai.Method
}

func (o *Search) AddFlags(flags *flag.FlagSet) {
	flags.IntVar(&o.Debug, "debug", 0, "debug level")
	flags.IntVar(&o.Depth, "depth", ai.DefaultDepth, "search depth when not deepening iteratively")
	flags.IntVar(&o.MaxDepth, "max-depth", ai.DefaultMaxDepth, "maximum depth for iterative deepening")
	flags.BoolVar(&o.Iterative, "iterative", true, "use iterative deepening")
	flags.StringVar(&o.Method, "method", "minimax", "search method (minimax|alphabeta)")
	flags.DurationVar(&o.Threshold, "threshold", ai.DefaultThreshold, "abandon a search with less than this much time left")
	flags.StringVar(&o.Eval, "eval", "custom", "evaluation function (custom|early|late|positional)")
	flags.StringVar(&o.Config, "config", "", "read search options from a config file")
	o.fs = flags
}

// Load resolves the options against the config file and environment.
// Flags given on the command line always win.
func (o *Search) Load() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("debug", o.Debug)
	v.SetDefault("depth", o.Depth)
	v.SetDefault("max-depth", o.MaxDepth)
	v.SetDefault("iterative", o.Iterative)
	v.SetDefault("method", o.Method)
	v.SetDefault("threshold", o.Threshold)
	v.SetDefault("eval", o.Eval)

	if o.Config != "" {
		v.SetConfigFile(o.Config)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read %s: %w", o.Config, err)
		}
	}
	if o.fs != nil {
		o.fs.Visit(func(f *flag.Flag) {
			if f.Name != "config" {
				v.Set(f.Name, f.Value.String())
			}
		})
	}

	o.Debug = v.GetInt("debug")
	o.Depth = v.GetInt("depth")
	o.MaxDepth = v.GetInt("max-depth")
	o.Iterative = v.GetBool("iterative")
	o.Method = v.GetString("method")
	o.Threshold = v.GetDuration("threshold")
	o.Eval = v.GetString("eval")

	m, err := ai.ParseMethod(o.Method)
	if err != nil {
		return err
	}
	o.method = m
	if _, err := ai.EvaluatorByName(o.Eval); err != nil {
		return err
	}
	return nil
}

func (o *Search) BuildConfig() ai.SearchConfig {
	return ai.SearchConfig{
		Depth:       o.Depth,
		MaxDepth:    o.MaxDepth,
		NoIterative: !o.Iterative,
		Method:      o.method,
		Threshold:   o.Threshold,
		Debug:       o.Debug,
		Eval:        o.Eval,
	}
}

// Build is Load followed by constructing the search agent.
func (o *Search) Build() (*ai.SearchAI, error) {
	if err := o.Load(); err != nil {
		return nil, err
	}
	return ai.NewSearch(o.BuildConfig())
}
