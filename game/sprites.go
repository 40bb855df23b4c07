package game

import (
	"bytes"
	"embed"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/pieces/*.svg
var pieceAssets embed.FS

var pieceFiles = map[chess.Piece]string{
	chess.WhiteKing:   "assets/pieces/wK.svg",
	chess.WhiteQueen:  "assets/pieces/wQ.svg",
	chess.WhiteRook:   "assets/pieces/wR.svg",
	chess.WhiteBishop: "assets/pieces/wB.svg",
	chess.WhiteKnight: "assets/pieces/wN.svg",
	chess.WhitePawn:   "assets/pieces/wP.svg",
	chess.BlackKing:   "assets/pieces/bK.svg",
	chess.BlackQueen:  "assets/pieces/bQ.svg",
	chess.BlackRook:   "assets/pieces/bR.svg",
	chess.BlackBishop: "assets/pieces/bB.svg",
	chess.BlackKnight: "assets/pieces/bN.svg",
	chess.BlackPawn:   "assets/pieces/bP.svg",
}

// loadPieceImages rasterizes every piece at the current square size.
func loadPieceImages(size int) map[chess.Piece]*ebiten.Image {
	pieces := make(map[chess.Piece]*ebiten.Image, len(pieceFiles))
	for piece, path := range pieceFiles {
		data, err := pieceAssets.ReadFile(path)
		if err != nil {
			log.Printf("Warning: failed to read piece asset %s: %v", path, err)
			continue
		}
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			log.Printf("Warning: failed to parse SVG %s: %v", path, err)
			continue
		}
		icon.SetTarget(0, 0, float64(size), float64(size))

		rgba := image.NewRGBA(image.Rect(0, 0, size, size))
		scanner := rasterx.NewScannerGV(size, size, rgba, rgba.Bounds())
		raster := rasterx.NewDasher(size, size, scanner)
		icon.Draw(raster, 1.0)

		pieces[piece] = ebiten.NewImageFromImage(rgba)
	}

	// Если SVG не загрузился, рисуем простой кружок
	for piece := range pieceFiles {
		if _, ok := pieces[piece]; ok {
			continue
		}
		img := ebiten.NewImage(size, size)
		clr := lightPieceFallback
		if piece.Color() == chess.Black {
			clr = darkPieceFallback
		}
		r := float32(size) / 3
		vector.DrawFilledCircle(img, float32(size)/2, float32(size)/2, r, clr, true)
		pieces[piece] = img
	}
	return pieces
}
