package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lk16/reversi-search/internal/othello"
)

func main() {
	boardString := flag.String("board", "", "the board to show, optionally followed by -x or -o")
	flag.Parse()

	board, side, err := othello.ParsePosition(*boardString)
	if err != nil {
		board, err = othello.NewBoardFromString(*boardString)
		side = othello.X
	}

	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	for _, line := range board.ASCIIArtLines(side) {
		fmt.Println(line)
	}
	fmt.Printf("x: %d  o: %d  to move: %s\n", board.Count(othello.X), board.Count(othello.O), side)
}
