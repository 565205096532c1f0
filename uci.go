package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"heron-engine/engine"
	gm "heron-engine/heronmg"
)

const engineName = "HeronEngine 1.0"
const engineAuthor = "Goose"

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	board := gm.ParseFen(gm.Startpos) // the game board
	searcher := engine.NewSearcher()

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name", engineName)
			fmt.Println("id author", engineAuthor)
			fmt.Println("option name Hash type spin default", engine.DefaultHashMB, "min 1 max 1024")
			fmt.Println("option name maxDepth type spin default", engine.MaxPly, "min 1 max", engine.MaxPly)
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			board = gm.ParseFen(gm.Startpos)
			searcher.NewGame()
		case "setoption":
			handleSetOption(line, searcher)
		case "position":
			if b, ok := handlePosition(line); ok {
				board = b
			}
		case "go":
			handleGo(line, &board, searcher)
		case "bench":
			searcher.Bench(engine.BenchDepth)
		case "perft":
			handlePerft(tokens, &board)
		case "stats":
			searcher.PrintStats = !searcher.PrintStats
		case "stop":
			searcher.Stop()
		case "quit":
			return
		default:
			// unknown commands are ignored, per UCI convention
		}
	}
}

func handleSetOption(line string, searcher *engine.Searcher) {
	tokens := strings.Fields(line)
	name, value := "", ""
	for i := 0; i < len(tokens)-1; i++ {
		switch strings.ToLower(tokens[i]) {
		case "name":
			name = tokens[i+1]
		case "value":
			value = tokens[i+1]
		}
	}
	switch strings.ToLower(name) {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < 1 {
			fmt.Println("info string Invalid Hash value:", value)
			return
		}
		searcher.TT.Resize(mb)
	case "maxdepth":
		d, err := strconv.Atoi(value)
		if err != nil || d < 1 {
			fmt.Println("info string Invalid maxDepth value:", value)
			return
		}
		if d > engine.MaxPly {
			d = engine.MaxPly
		}
		searcher.MaxDepth = d
	default:
		fmt.Println("info string Unknown option:", name)
	}
}

func handlePosition(line string) (gm.Board, bool) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		fmt.Println("info string Malformed position command")
		return gm.Board{}, false
	}

	var board gm.Board
	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		board = gm.ParseFen(gm.Startpos)
		posScanner.Scan() // advance to leave the scanner in a consistent state
	case "fen":
		fenstr := ""
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fenstr += posScanner.Text() + " "
		}
		parsed, err := gm.ParseFEN(fenstr)
		if err != nil {
			fmt.Println("info string Invalid fen position:", err)
			return gm.Board{}, false
		}
		board = *parsed
	default:
		fmt.Println("info string Invalid position subcommand")
		return gm.Board{}, false
	}

	if strings.ToLower(posScanner.Text()) != "moves" {
		return board, true
	}
	for posScanner.Scan() { // for each move
		moveStr := strings.ToLower(posScanner.Text())
		parsed, err := gm.ParseMove(moveStr)
		if err != nil {
			fmt.Println("info string Could not parse move", moveStr)
			return board, true
		}
		found := false
		for _, mv := range board.GenerateMoves() {
			if mv == parsed || mv.String() == moveStr {
				board.MakeMove(mv)
				found = true
				break
			}
		}
		if !found {
			fmt.Println("info string Move", moveStr, "not legal in position", board.ToFEN())
			return board, true
		}
	}
	return board, true
}

func handleGo(line string, board *gm.Board, searcher *engine.Searcher) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token

	var limits engine.Limits
	readInt := func(what string) (int, bool) {
		if !goScanner.Scan() {
			fmt.Println("info string Malformed go command option", what)
			return 0, false
		}
		v, err := strconv.Atoi(goScanner.Text())
		if err != nil {
			fmt.Println("info string Could not convert go option", what)
			return 0, false
		}
		return v, true
	}
	for goScanner.Scan() {
		switch strings.ToLower(goScanner.Text()) {
		case "infinite":
			limits.Infinite = true
		case "wtime":
			if v, ok := readInt("wtime"); ok {
				limits.WTime = v
			}
		case "btime":
			if v, ok := readInt("btime"); ok {
				limits.BTime = v
			}
		case "winc":
			if v, ok := readInt("winc"); ok {
				limits.WInc = v
			}
		case "binc":
			if v, ok := readInt("binc"); ok {
				limits.BInc = v
			}
		case "movetime":
			if v, ok := readInt("movetime"); ok {
				limits.MoveTime = v
			}
		case "depth":
			if v, ok := readInt("depth"); ok {
				limits.Depth = v
			}
		default:
			fmt.Println("info string Unknown go subcommand", goScanner.Text())
		}
	}

	// A bare "go" with no clock still has to answer; treat it as a
	// five-minute clock for both sides
	if !limits.Infinite && limits.Depth == 0 && limits.MoveTime == 0 &&
		limits.WTime == 0 && limits.BTime == 0 {
		limits.WTime = 300000
		limits.BTime = 300000
	}

	result := searcher.Think(board, limits)
	if result.Move == gm.NullMove {
		fmt.Println("bestmove (none)")
		return
	}
	fmt.Println("bestmove", result.Move.String())
}

func handlePerft(tokens []string, board *gm.Board) {
	if len(tokens) < 2 {
		fmt.Println("info string perft needs a depth")
		return
	}
	depth, err := strconv.Atoi(tokens[1])
	if err != nil || depth < 1 {
		fmt.Println("info string Invalid perft depth:", tokens[1])
		return
	}
	nodes := gm.Perft(board, depth)
	fmt.Println("info string perft", depth, "nodes", nodes)
	fmt.Println(nodes)
}
