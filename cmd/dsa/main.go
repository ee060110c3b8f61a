// Package main provides the dsa command line tool. It resolves one command
// given as arguments, or reads commands line by line from stdin when no
// arguments are given.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/cory-johannsen/dsa/internal/config"
	"github.com/cory-johannsen/dsa/internal/game/character"
	"github.com/cory-johannsen/dsa/internal/game/command"
	"github.com/cory-johannsen/dsa/internal/game/dice"
	"github.com/cory-johannsen/dsa/internal/game/ruleset"
	"github.com/cory-johannsen/dsa/internal/observability"
	"github.com/cory-johannsen/dsa/internal/render"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file, empty for defaults")
	characterPath := flag.String("character", "", "character sheet (YAML or JSON), overrides data.character")
	rulesetPath := flag.String("ruleset", "", "rule dataset file or directory, overrides data.ruleset")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *characterPath != "" {
		cfg.Data.Character = *characterPath
	}
	if *rulesetPath != "" {
		cfg.Data.Ruleset = *rulesetPath
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	s, err := newSession(cfg, logger)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if args := flag.Args(); len(args) > 0 {
		out, err := s.run(args[0], args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprint(os.Stdout, out)
		return
	}

	if err := s.repl(os.Stdin, os.Stdout); err != nil {
		logger.Error("reading input", zap.Error(err))
		os.Exit(1)
	}
}

// newSession loads the rule dataset and the optional character and wires the
// executor from cfg.
func newSession(cfg config.Config, logger *zap.Logger) (*session, error) {
	ds, err := ruleset.Load(cfg.Data.Ruleset)
	if err != nil {
		return nil, err
	}
	logger.Info("ruleset loaded",
		zap.String("path", cfg.Data.Ruleset),
		zap.Int("talents", len(ds.Talents)),
		zap.Int("spells", len(ds.Spells)),
		zap.Int("chants", len(ds.Chants)),
	)

	var c *character.Character
	if cfg.Data.Character != "" {
		c, err = character.Load(cfg.Data.Character)
		if err != nil {
			return nil, err
		}
		logger.Info("character loaded", zap.String("name", c.Name), zap.Stringer("character_id", c.ID))
	}

	crits, err := command.CritRuleFor(cfg.Rules.CritRules, cfg.Rules.RequiredCrits)
	if err != nil {
		return nil, err
	}

	var src dice.Source
	if cfg.Dice.Seed != 0 {
		src = dice.NewSeededSource(cfg.Dice.Seed)
		logger.Info("using seeded dice", zap.Int64("seed", cfg.Dice.Seed))
	} else {
		src = dice.NewCryptoSource()
	}

	reg := command.DefaultRegistry()
	exec := command.NewExecutor(ds, command.Options{
		SkillCrits: crits,
		Limits:     cfg.Dice.Limits(),
		MaxRounds:  cfg.Initiative.MaxRounds,
	}, src, logger)

	return &session{
		reg:       reg,
		exec:      exec,
		character: c,
		renderer:  render.Renderer{Color: useColor(cfg.Output.Color, os.Stdout)},
	}, nil
}

// useColor resolves the output.color setting. "auto" colors only terminals.
func useColor(setting string, w io.Writer) bool {
	switch setting {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		return term.IsTerminal(int(f.Fd()))
	}
}
