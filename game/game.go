// Package game is the ebiten front end: a human plays one colour and a bot
// from the roster plays the other.
package game

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/Harikrishnan-web/AI-mini-project/bots"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
)

const (
	infoHeight = 80
	btnWidth   = 200
	btnHeight  = 60
	// Небольшая задержка перед ходом бота
	botDelay = 300 * time.Millisecond
)

var (
	lightSquare   = color.RGBA{240, 217, 181, 255}
	darkSquare    = color.RGBA{181, 136, 99, 255}
	lastMoveColor = color.RGBA{205, 210, 106, 160}
	selectedColor = color.RGBA{120, 170, 90, 180}
	targetColor   = color.RGBA{40, 40, 40, 90}
	background    = color.RGBA{30, 30, 34, 255}
	whiteButton   = color.RGBA{200, 200, 200, 255}
	blackButton   = color.RGBA{50, 50, 50, 255}
	buttonBorder  = color.RGBA{120, 120, 120, 255}
	textLight     = colorScale(color.RGBA{235, 235, 235, 255})
	textDark      = colorScale(color.RGBA{20, 20, 20, 255})
	textHighlight = colorScale(color.RGBA{240, 200, 90, 255})

	lightPieceFallback = color.RGBA{250, 250, 250, 255}
	darkPieceFallback  = color.RGBA{20, 20, 20, 255}
)

type botReply struct {
	move *chess.Move
	err  error
}

// Game implements ebiten.Game.
type Game struct {
	chessGame   *chess.Game
	startFEN    string
	pieces      map[chess.Piece]*ebiten.Image
	selected    chess.Square
	dragging    *chess.Piece
	dragX       int
	dragY       int
	playerColor chess.Color
	gameStarted bool
	lastMove    *chess.Move

	roster      []bots.ChessBot
	current     int
	botThinking bool
	botReplies  chan botReply
	botStarted  time.Time

	screenWidth  int
	screenHeight int
	squareSize   int
	boardOffsetX int
	boardOffsetY int
}

// NewGame prepares a game starting from fen, or from the standard position
// when fen is empty. The roster's third bot is selected if there is one.
func NewGame(fen string, roster []bots.ChessBot) (*Game, error) {
	if len(roster) == 0 {
		return nil, fmt.Errorf("game: empty bot roster")
	}
	if fen != "" {
		if _, err := chess.FEN(fen); err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}

	// Размер клетки считаем от размера экрана
	screenWidth, screenHeight := ebiten.ScreenSizeInFullscreen()
	if screenWidth == 0 || screenHeight == 0 {
		screenWidth, screenHeight = 960, 880
	}
	boardHeight := screenHeight - infoHeight
	squareSize := min(boardHeight, screenWidth) / 8
	boardWidth := squareSize * 8

	g := &Game{
		startFEN:     fen,
		roster:       roster,
		current:      min(2, len(roster)-1),
		botReplies:   make(chan botReply, 1),
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		squareSize:   squareSize,
		boardOffsetX: (screenWidth - boardWidth) / 2,
		boardOffsetY: infoHeight / 2,
	}
	g.pieces = loadPieceImages(squareSize)
	return g, nil
}

// WindowSize is the size the game lays itself out for.
func (g *Game) WindowSize() (int, int) {
	return g.screenWidth, g.screenHeight
}

func (g *Game) Update() error {
	if err := g.checkBotMove(); err != nil {
		return err
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) && !g.botThinking {
		g.current = (g.current + 1) % len(g.roster)
		log.Printf("Bot: %s", g.currentBot().Name())
	}

	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			white, black := g.colorButtons()
			switch {
			case white.contains(x, y):
				return g.startGame(chess.White)
			case black.contains(x, y):
				return g.startGame(chess.Black)
			}
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyN) && !g.botThinking {
		g.gameStarted = false
		return nil
	}

	if g.chessGame.Outcome() != chess.NoOutcome {
		return nil
	}

	// Ход игрока
	if g.chessGame.Position().Turn() == g.playerColor {
		g.handleDrag()
		return nil
	}

	if !g.botThinking {
		g.startBot()
	}
	return nil
}

func (g *Game) handleDrag() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if sq, ok := g.squareAt(x, y); ok {
			piece := g.chessGame.Position().Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected = sq
				g.dragging = &piece
			}
		}
	}
	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		x, y := ebiten.CursorPosition()
		if target, ok := g.squareAt(x, y); ok {
			if move := findMove(g.chessGame, g.selected, target); move != nil {
				if err := g.chessGame.Move(move); err != nil {
					log.Printf("Player move error: %v", err)
				} else {
					g.lastMove = move
				}
			}
		}
		g.dragging = nil
	}
}

func (g *Game) startGame(playerColor chess.Color) error {
	g.chessGame = chess.NewGame()
	if g.startFEN != "" {
		opt, err := chess.FEN(g.startFEN)
		if err != nil {
			return fmt.Errorf("game: %w", err)
		}
		g.chessGame = chess.NewGame(opt)
	}
	g.playerColor = playerColor
	g.gameStarted = true
	g.lastMove = nil
	g.dragging = nil
	return nil
}

func (g *Game) currentBot() bots.ChessBot {
	return g.roster[g.current]
}

// startBot hands the bot a private copy of the game; the reply arrives on
// botReplies and is applied by checkBotMove.
func (g *Game) startBot() {
	g.botThinking = true
	g.botStarted = time.Now()
	bot := g.currentBot()
	snapshot := g.chessGame.Clone()
	go func() {
		time.Sleep(botDelay)
		move, err := bot.BestMove(snapshot)
		g.botReplies <- botReply{move: move, err: err}
	}()
}

func (g *Game) checkBotMove() error {
	if !g.botThinking {
		return nil
	}
	select {
	case reply := <-g.botReplies:
		g.botThinking = false
		if reply.err != nil {
			return fmt.Errorf("%s: %w", g.currentBot().Name(), reply.err)
		}
		if err := g.chessGame.Move(reply.move); err != nil {
			return fmt.Errorf("%s played %s: %w", g.currentBot().Name(), reply.move, err)
		}
		g.lastMove = reply.move
		log.Printf("%s played %s in %v", g.currentBot().Name(), reply.move, time.Since(g.botStarted).Round(time.Millisecond))
	default:
	}
	return nil
}

// findMove returns the legal move from -> to, promoting to a queen when
// there is a choice.
func findMove(game *chess.Game, from, to chess.Square) *chess.Move {
	var found *chess.Move
	for _, m := range game.ValidMoves() {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen {
			return m
		}
		found = m
	}
	return found
}

// squareAt maps screen coordinates to a board square, flipping the board
// when the player has Black.
func (g *Game) squareAt(x, y int) (chess.Square, bool) {
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	size := g.squareSize * 8
	if x < 0 || x >= size || y < 0 || y >= size {
		return chess.NoSquare, false
	}
	file, rank := x/g.squareSize, 7-y/g.squareSize
	if g.playerColor == chess.Black {
		file, rank = 7-file, 7-rank
	}
	return chess.Square(file + rank*8), true
}

// squareOrigin is the top-left pixel of sq on screen.
func (g *Game) squareOrigin(sq chess.Square) (float32, float32) {
	file, rank := int(sq)%8, int(sq)/8
	if g.playerColor == chess.Black {
		file, rank = 7-file, 7-rank
	}
	x := g.boardOffsetX + file*g.squareSize
	y := g.boardOffsetY + (7-rank)*g.squareSize
	return float32(x), float32(y)
}

type rect struct{ x, y, w, h int }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (g *Game) colorButtons() (white, black rect) {
	y := g.screenHeight/2 + 100
	white = rect{g.screenWidth/2 - btnWidth - 20, y, btnWidth, btnHeight}
	black = rect{g.screenWidth/2 + 20, y, btnWidth, btnHeight}
	return white, black
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	cx := float64(g.screenWidth) / 2

	if !g.gameStarted {
		// Экран выбора цвета
		drawCentered(screen, "Шахматы на Go", titleFace, cx, float64(g.screenHeight/2-80), textLight)
		drawCentered(screen, "Выберите цвет фигур:", regularFace, cx, float64(g.screenHeight/2), textLight)
		drawCentered(screen, "Бот: "+g.currentBot().Name()+"  (B - сменить)", regularFace, cx, float64(g.screenHeight/2+30), textHighlight)

		white, black := g.colorButtons()
		g.drawButton(screen, white, whiteButton, "Играть белыми", textDark)
		g.drawButton(screen, black, blackButton, "Играть черными", textLight)
		return
	}

	g.drawBoard(screen)
	g.drawPieces(screen)
	g.drawStatus(screen)
}

func (g *Game) drawButton(screen *ebiten.Image, r rect, fill color.Color, label string, clr ebiten.ColorScale) {
	vector.DrawFilledRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), fill, false)
	vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 2, buttonBorder, false)
	drawCentered(screen, label, regularFace, float64(r.x+r.w/2), float64(r.y+r.h/2-10), clr)
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	size := float32(g.squareSize)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		x, y := g.squareOrigin(sq)
		clr := darkSquare
		if (int(sq)%8+int(sq)/8)%2 == 1 {
			clr = lightSquare
		}
		vector.DrawFilledRect(screen, x, y, size, size, clr, false)
	}

	if g.lastMove != nil {
		for _, sq := range []chess.Square{g.lastMove.S1(), g.lastMove.S2()} {
			x, y := g.squareOrigin(sq)
			vector.DrawFilledRect(screen, x, y, size, size, lastMoveColor, false)
		}
	}

	if g.dragging != nil {
		x, y := g.squareOrigin(g.selected)
		vector.DrawFilledRect(screen, x, y, size, size, selectedColor, false)
		for _, m := range g.chessGame.ValidMoves() {
			if m.S1() != g.selected {
				continue
			}
			x, y := g.squareOrigin(m.S2())
			vector.DrawFilledCircle(screen, x+size/2, y+size/2, size/6, targetColor, true)
		}
	}
}

func (g *Game) drawPieces(screen *ebiten.Image) {
	board := g.chessGame.Position().Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
			continue
		}
		if img := g.pieces[piece]; img != nil {
			x, y := g.squareOrigin(sq)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x), float64(y))
			screen.DrawImage(img, op)
		}
	}

	// Перетаскиваемая фигура
	if g.dragging != nil {
		if img := g.pieces[*g.dragging]; img != nil {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(
				float64(g.dragX)-float64(g.squareSize)/2,
				float64(g.dragY)-float64(g.squareSize)/2,
			)
			screen.DrawImage(img, op)
		}
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := "Ваш ход"
	switch {
	case g.chessGame.Outcome() != chess.NoOutcome:
		status = fmt.Sprintf("Результат: %s (%s)  N - новая игра", g.chessGame.Outcome(), g.chessGame.Method())
	case g.botThinking:
		status = "Бот думает..."
	case g.chessGame.Position().Turn() != g.playerColor:
		status = "Ход бота"
	}
	drawText(screen, status, regularFace, 20, 10, textLight)

	botInfo := "Бот: " + g.currentBot().Name()
	drawText(screen, botInfo, regularFace, float64(g.screenWidth-320), 10, textHighlight)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

func colorScale(c color.Color) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}
