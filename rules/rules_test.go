package rules

import (
	"errors"
	"fmt"
	"testing"
)

const (
	startFEN     = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	enPassantFEN = "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"

	whiteInCheckmate = "rnb1kbnr/pppp1ppp/4p3/8/5PPq/8/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	blackInCheckmate = "rnbqkbnr/ppppp2p/8/5ppQ/4PP2/8/PPPP2PP/RNB1KBNR b KQkq - 1 3"
	whiteInStalemate = "2k5/8/8/8/8/1q6/r7/2K5 w - - 0 1"
	blackInStalemate = "3k4/7R/2Q5/8/8/8/8/3K4 b - - 0 1"
)

// adapter is the subset of the two adapters the shared tests need, with
// moves handled as UCI strings.
type adapter struct {
	name     string
	pos      Position
	legal    func() []string
	apply    func(uci string) error
	undo     func(uci string) error
	capture  func(uci string) bool
	snapshot func() string
}

func newAdapters(t *testing.T, fen string) []adapter {
	t.Helper()
	g, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN(%q): %v", fen, err)
	}
	b := NewBoard(fen)
	return []adapter{gameAdapter(t, g), boardAdapter(t, b)}
}

func gameAdapter(t *testing.T, g *Game) adapter {
	return adapter{
		name: "notnil",
		pos:  g,
		legal: func() []string {
			var out []string
			for _, m := range g.LegalMoves() {
				out = append(out, g.MoveString(m))
			}
			return out
		},
		apply: func(uci string) error {
			m, err := g.ParseMove(uci)
			if err != nil {
				return err
			}
			return g.Apply(m)
		},
		undo: func(uci string) error {
			if len(g.moves) == 0 {
				return g.Undo(nil)
			}
			for _, m := range g.positions[len(g.positions)-2].ValidMoves() {
				if g.MoveString(m) == uci {
					return g.Undo(m)
				}
			}
			t.Fatalf("notnil: %s is not a move of the previous position", uci)
			return nil
		},
		capture: func(uci string) bool {
			m, err := g.ParseMove(uci)
			if err != nil {
				t.Fatalf("notnil: %v", err)
			}
			return g.IsCapture(m)
		},
		snapshot: g.FEN,
	}
}

func boardAdapter(t *testing.T, b *Board) adapter {
	return adapter{
		name: "dragon",
		pos:  b,
		legal: func() []string {
			var out []string
			for _, m := range b.LegalMoves() {
				out = append(out, b.MoveString(m))
			}
			return out
		},
		apply: func(uci string) error {
			m, err := b.ParseMove(uci)
			if err != nil {
				return err
			}
			return b.Apply(m)
		},
		undo: func(uci string) error {
			if len(b.frames) == 0 {
				return b.Undo(0)
			}
			for _, f := range b.frames {
				if b.MoveString(f.move) == uci {
					return b.Undo(f.move)
				}
			}
			t.Fatalf("dragon: %s was never applied", uci)
			return nil
		},
		capture: func(uci string) bool {
			m, err := b.ParseMove(uci)
			if err != nil {
				t.Fatalf("dragon: %v", err)
			}
			return b.IsCapture(m)
		},
		snapshot: func() string {
			return fmt.Sprintf("%+v", *b.Board())
		},
	}
}

func TestLegalMoveCounts(t *testing.T) {
	tests := []struct {
		fen  string
		want int
	}{
		{startFEN, 20},
		{kiwipeteFEN, 48},
		{whiteInCheckmate, 0},
		{blackInStalemate, 0},
	}
	for _, tt := range tests {
		for _, a := range newAdapters(t, tt.fen) {
			if got := len(a.legal()); got != tt.want {
				t.Errorf("%s: %d legal moves in %s, want %d", a.name, got, tt.fen, tt.want)
			}
		}
	}
}

func TestTerminalPredicates(t *testing.T) {
	tests := []struct {
		fen                  string
		checkmate, stalemate bool
	}{
		{startFEN, false, false},
		{whiteInCheckmate, true, false},
		{blackInCheckmate, true, false},
		{whiteInStalemate, false, true},
		{blackInStalemate, false, true},
	}
	for _, tt := range tests {
		for _, a := range newAdapters(t, tt.fen) {
			if got := a.pos.IsCheckmate(); got != tt.checkmate {
				t.Errorf("%s: IsCheckmate(%s) = %v, want %v", a.name, tt.fen, got, tt.checkmate)
			}
			if got := a.pos.IsStalemate(); got != tt.stalemate {
				t.Errorf("%s: IsStalemate(%s) = %v, want %v", a.name, tt.fen, got, tt.stalemate)
			}
			if got := IsTerminal(a.pos); got != (tt.checkmate || tt.stalemate) {
				t.Errorf("%s: IsTerminal(%s) = %v", a.name, tt.fen, got)
			}
		}
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/8/2B1K3 w - - 0 1", true},
		{"8/8/8/4k3/8/8/8/1N2K3 w - - 0 1", true},
		{"2b5/8/8/4k3/8/8/8/2B1K3 w - - 0 1", false}, // c8 is light, c1 is dark
		{"5b2/8/8/4k3/8/8/8/2B1K3 w - - 0 1", true},  // f8 and c1 are both dark
		{"8/8/8/4k3/8/8/8/1NN1K3 w - - 0 1", false},
		{"8/8/8/4k3/8/8/8/R3K3 w - - 0 1", false},
		{"8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{startFEN, false},
	}
	for _, tt := range tests {
		for _, a := range newAdapters(t, tt.fen) {
			if got := a.pos.IsInsufficientMaterial(); got != tt.want {
				t.Errorf("%s: IsInsufficientMaterial(%s) = %v, want %v", a.name, tt.fen, got, tt.want)
			}
		}
	}
}

func TestRepetition(t *testing.T) {
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for _, a := range newAdapters(t, startFEN) {
		var played []string
		for round := 0; round < 2; round++ {
			if a.pos.IsRepetition() {
				t.Fatalf("%s: repetition reported after %v", a.name, played)
			}
			for _, uci := range shuffle {
				if err := a.apply(uci); err != nil {
					t.Fatalf("%s: apply %s: %v", a.name, uci, err)
				}
				played = append(played, uci)
			}
		}
		if !a.pos.IsRepetition() {
			t.Fatalf("%s: start position seen three times but no repetition reported", a.name)
		}
		if !IsTerminal(a.pos) {
			t.Errorf("%s: repetition is not terminal", a.name)
		}
		if err := a.undo(played[len(played)-1]); err != nil {
			t.Fatalf("%s: undo: %v", a.name, err)
		}
		if a.pos.IsRepetition() {
			t.Errorf("%s: repetition still reported after undo", a.name)
		}
	}
}

func TestRepetitionRespectsCastlingRights(t *testing.T) {
	// the rook shuffle gives up castling, so the start position never recurs
	const fen = "4k2r/8/8/8/8/8/8/4K2R w Kk - 0 1"
	shuffle := []string{"h1h2", "h8h7", "h2h1", "h7h8"}
	for _, a := range newAdapters(t, fen) {
		for round := 1; round <= 3; round++ {
			for _, uci := range shuffle {
				if err := a.apply(uci); err != nil {
					t.Fatalf("%s: apply %s: %v", a.name, uci, err)
				}
			}
			if got, want := a.pos.IsRepetition(), round == 3; got != want {
				t.Errorf("%s: after %d rounds IsRepetition = %v, want %v", a.name, round, got, want)
			}
		}
	}
}

func TestApplyUndoRestoresPosition(t *testing.T) {
	// castling, en passant and promotion all touch ancillary state
	tests := []struct {
		fen   string
		moves []string
	}{
		{kiwipeteFEN, []string{"e1g1", "e8c8", "d5e6", "h3g2"}},
		{enPassantFEN, []string{"e5d6", "e8f7", "d6d7"}},
		{"8/P3k3/8/8/8/8/8/4K3 w - - 0 1", []string{"a7a8q", "e7d6", "a8a1"}},
	}
	for _, tt := range tests {
		for _, a := range newAdapters(t, tt.fen) {
			before := a.snapshot()
			for _, uci := range tt.moves {
				if err := a.apply(uci); err != nil {
					t.Fatalf("%s: apply %s: %v", a.name, uci, err)
				}
			}
			for i := len(tt.moves) - 1; i >= 0; i-- {
				if err := a.undo(tt.moves[i]); err != nil {
					t.Fatalf("%s: undo %s: %v", a.name, tt.moves[i], err)
				}
			}
			if after := a.snapshot(); after != before {
				t.Errorf("%s: position not restored:\n got %s\nwant %s", a.name, after, before)
			}
		}
	}
}

func TestIllegalMoveRejected(t *testing.T) {
	for _, a := range newAdapters(t, startFEN) {
		before := a.snapshot()
		if err := a.apply("e2e5"); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("%s: apply e2e5: got %v, want ErrIllegalMove", a.name, err)
		}
		if after := a.snapshot(); after != before {
			t.Errorf("%s: rejected move changed the position", a.name)
		}
	}
}

func TestUndoErrors(t *testing.T) {
	for _, a := range newAdapters(t, startFEN) {
		if err := a.undo("e2e4"); !errors.Is(err, ErrNothingToUndo) {
			t.Errorf("%s: undo on fresh position: got %v, want ErrNothingToUndo", a.name, err)
		}
	}

	g, err := FromFEN(startFEN)
	if err != nil {
		t.Fatal(err)
	}
	e4, _ := g.ParseMove("e2e4")
	d4, _ := g.ParseMove("d2d4")
	if err := g.Apply(e4); err != nil {
		t.Fatal(err)
	}
	if err := g.Undo(d4); !errors.Is(err, ErrUndoMismatch) {
		t.Errorf("notnil: undo of a different move: got %v, want ErrUndoMismatch", err)
	}

	b := NewBoard(startFEN)
	be4, _ := b.ParseMove("e2e4")
	bd4, _ := b.ParseMove("d2d4")
	if err := b.Apply(be4); err != nil {
		t.Fatal(err)
	}
	if err := b.Undo(bd4); !errors.Is(err, ErrUndoMismatch) {
		t.Errorf("dragon: undo of a different move: got %v, want ErrUndoMismatch", err)
	}
}

func TestIsCapture(t *testing.T) {
	tests := []struct {
		fen  string
		move string
		want bool
	}{
		{enPassantFEN, "e5d6", true},
		{enPassantFEN, "e5e6", false},
		{kiwipeteFEN, "e5f7", true},
		{kiwipeteFEN, "e2a6", true},
		{kiwipeteFEN, "e1g1", false},
		{"4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", "e4d5", true},
	}
	for _, tt := range tests {
		for _, a := range newAdapters(t, tt.fen) {
			if got := a.capture(tt.move); got != tt.want {
				t.Errorf("%s: IsCapture(%s) in %s = %v, want %v", a.name, tt.move, tt.fen, got, tt.want)
			}
		}
	}
}

func TestAdaptersAgree(t *testing.T) {
	for _, fen := range []string{startFEN, kiwipeteFEN, enPassantFEN, blackInCheckmate, "4k2r/8/8/8/8/8/8/4K2R w Kk - 0 1"} {
		as := newAdapters(t, fen)
		g, b := as[0].pos, as[1].pos
		if g.Turn() != b.Turn() {
			t.Errorf("%s: turn %v vs %v", fen, g.Turn(), b.Turn())
		}
		for sq := Square(0); sq < 64; sq++ {
			gp, gok := g.PieceAt(sq)
			bp, bok := b.PieceAt(sq)
			if gp != bp || gok != bok {
				t.Errorf("%s: PieceAt(%s) notnil=%v,%v dragon=%v,%v", fen, sq, gp, gok, bp, bok)
			}
		}
	}
}

func TestPieceAt(t *testing.T) {
	for _, a := range newAdapters(t, startFEN) {
		if p, ok := a.pos.PieceAt(NewSquare(4, 0)); !ok || p != (Piece{King, White}) {
			t.Errorf("%s: e1 = %v,%v, want white king", a.name, p, ok)
		}
		if p, ok := a.pos.PieceAt(NewSquare(3, 7)); !ok || p != (Piece{Queen, Black}) {
			t.Errorf("%s: d8 = %v,%v, want black queen", a.name, p, ok)
		}
		if _, ok := a.pos.PieceAt(NewSquare(4, 3)); ok {
			t.Errorf("%s: e4 should be empty", a.name)
		}
	}
}

func TestSquare(t *testing.T) {
	if got := NewSquare(4, 3).String(); got != "e4" {
		t.Errorf("NewSquare(4, 3) = %s, want e4", got)
	}
	if NewSquare(0, 0).Light() {
		t.Error("a1 should be dark")
	}
	if !NewSquare(7, 0).Light() {
		t.Error("h1 should be light")
	}
}
