//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/lk16/reversi-search/internal/eval"
	"github.com/lk16/reversi-search/internal/othello"
	"github.com/lk16/reversi-search/internal/player"
	"github.com/lk16/reversi-search/internal/search"
)

func errorResult(format string, args ...any) map[string]interface{} {
	fmt.Printf(format+"\n", args...)
	return map[string]interface{}{
		"move":  othello.PassField,
		"score": 0,
	}
}

// bestMove takes a position string like "<32 hex chars>-x" and a depth, and
// returns the negamax move with the heuristic evaluator.
func bestMove(this js.Value, args []js.Value) interface{} {
	if len(args) != 2 {
		return errorResult("bestMove called with wrong number of args")
	}

	if args[0].Type() != js.TypeString {
		return errorResult("bestMove called with wrong type of arg 0")
	}

	if args[1].Type() != js.TypeNumber {
		return errorResult("bestMove called with wrong type of arg 1")
	}

	board, side, err := othello.ParsePosition(args[0].String())
	if err != nil {
		return errorResult("error parsing position: %v", err)
	}

	depth := min(max(args[1].Int(), 1), player.MaxDepth)

	negamax := search.NewNegamax(side, depth, eval.Heuristic{})
	result := negamax.Analyze(board)

	return map[string]interface{}{
		"move":  othello.MoveToField(result.Move),
		"score": result.Score,
		"nodes": negamax.Nodes(),
	}
}

func main() {
	// Register the bestMove function in the global scope
	js.Global().Set("bestMove", js.FuncOf(bestMove))

	// Keep the program running
	select {}
}
