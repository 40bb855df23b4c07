package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Harikrishnan-web/AI-mini-project/bots"
	"github.com/Harikrishnan-web/AI-mini-project/game"
	"github.com/Harikrishnan-web/AI-mini-project/rules"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type config struct {
	fen        string
	depth      int
	rules      string
	noOrdering bool
	noPruning  bool
	gui        bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.fen, "fen", "", "position to search, in FEN (default: the initial position)")
	flag.IntVar(&cfg.depth, "depth", 3, "search depth in plies")
	flag.StringVar(&cfg.rules, "rules", "notnil", "rules engine: notnil or dragon")
	flag.BoolVar(&cfg.noOrdering, "no-ordering", false, "search moves in generator order")
	flag.BoolVar(&cfg.noPruning, "no-pruning", false, "disable alpha-beta cutoffs")
	flag.BoolVar(&cfg.gui, "gui", false, "play against the bots in a window")
	flag.Parse()

	if cfg.gui {
		if err := runGUI(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := analyze(cfg); err != nil {
		log.Fatal(err)
	}
}

func runGUI(cfg config) error {
	g, err := game.NewGame(cfg.fen, bots.DefaultRoster(cfg.depth))
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetWindowTitle("Шахматы на Go")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func analyze(cfg config) error {
	fen := cfg.fen
	if fen == "" {
		fen = startFEN
	}
	if _, err := chess.FEN(fen); err != nil {
		return fmt.Errorf("invalid -fen: %w", err)
	}

	switch cfg.rules {
	case "notnil":
		g, err := rules.FromFEN(fen)
		if err != nil {
			return err
		}
		return search(g, cfg)
	case "dragon":
		return search(rules.NewBoard(fen), cfg)
	default:
		return fmt.Errorf("unknown -rules %q: want notnil or dragon", cfg.rules)
	}
}

func search[M comparable](r rules.Rules[M], cfg config) error {
	s := bots.NewSearcher[M]()
	s.Ordering = !cfg.noOrdering
	s.Pruning = !cfg.noPruning

	log.Printf("Searching %d plies with %s rules (ordering %v, pruning %v)",
		cfg.depth, cfg.rules, s.Ordering, s.Pruning)
	start := time.Now()
	res, err := s.Search(r, cfg.depth, r.Turn() == rules.White)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	move := "(none)"
	if res.HasMove {
		move = r.MoveString(res.Move)
	}
	fmt.Printf("bestmove %s score %d\n", move, res.Score)
	fmt.Printf("nodes %d leaves %d cutoffs %d time %v\n",
		res.Stats.Nodes, res.Stats.Leaves, res.Stats.Cutoffs, elapsed.Round(time.Millisecond))
	return nil
}
