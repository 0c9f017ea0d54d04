// Command gochess is a thin harness wiring an Options file to a Board
// and a Human/Computer Player pair: not a full referee, just enough
// alternation to exercise the library end-to-end as a CLI host around
// the engine package rather than a product on its own.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/markassa/gochess/board"
	"github.com/markassa/gochess/config"
	"github.com/markassa/gochess/player"
)

var optionsPath = flag.String("options", "", "path to an Options YAML file (default: built-in standard game)")

func main() {
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetPrefix("gochess: ")
	log.SetFlags(0)

	opts, err := loadOptions(*optionsPath)
	if err != nil {
		log.Fatal(err)
	}

	b, err := board.Setup(opts.Board, opts.Color())
	if err != nil {
		log.Fatal(err)
	}

	white, black := buildPlayers(opts)
	players := map[board.Color]player.Player{board.White: white, board.Black: black}

	for b.Status == "" {
		p := players[b.SideToMove()]
		from, to, err := p.ChooseMove(b)
		if err != nil {
			if b.Status == "" && errors.Is(err, player.ErrResign) {
				b.Status = fmt.Sprintf("%s resigns", p.Color())
			} else if b.Status == "" {
				log.Fatal(err)
			}
			break
		}
		if !b.Apply(p, p.Color(), from, to) {
			log.Fatalf("player %s chose an illegal move %s-%s", p.Color(), from, to)
		}
		fmt.Printf("%c%d-%c%d\n", 'A'+from.File(), from.Rank()+1, 'A'+to.File(), to.Rank()+1)
	}

	fmt.Println(b.Status)
}

func loadOptions(path string) (config.Options, error) {
	if path == "" {
		return config.Options{
			Board:       board.StandardCells(),
			FirstColour: "White",
			HumanFirst:  true,
			SimpleEval:  false,
			Depth:       6,
		}, nil
	}
	return config.Load(path)
}

func buildPlayers(opts config.Options) (white, black player.Player) {
	human := opts.Color()
	computer := human.Other()
	if !opts.HumanFirst {
		human, computer = computer, human
	}

	rng := rand.New(rand.NewSource(1))
	humanPlayer := player.NewHuman(human, os.Stdin, os.Stdout)
	computerPlayer := player.NewComputer(computer, opts.Depth, opts.SimpleEval, rng, nil)

	if human == board.White {
		return humanPlayer, computerPlayer
	}
	return computerPlayer, humanPlayer
}
