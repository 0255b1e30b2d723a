package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/playmatatu/billiard/internal/config"
	"github.com/playmatatu/billiard/internal/game"
)

func main() {
	pixels := flag.Bool("px", false, "print positions in renderer pixels instead of metres")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()

	sim, err := game.NewSimulation(cfg.SimulationOptions())
	if err != nil {
		log.Fatalf("Failed to rack table: %v", err)
	}
	snap := sim.Snapshot()

	scale, unit := 1.0, "m"
	if *pixels {
		scale, unit = game.MetersToCoord, "px"
	}

	fmt.Printf("Table %.3f x %.3f %s, %d balls\n\n", snap.Length*scale, snap.Width*scale, unit, len(snap.Balls))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BALL\tX\tY\tRADIUS")
	for _, b := range snap.Balls {
		name := fmt.Sprintf("%d", b.ID)
		if b.ID == game.CueBallID {
			name = "cue"
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\n", name, b.X*scale, b.Y*scale, b.Radius*scale)
	}
	w.Flush()

	fmt.Println()
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POCKET\tX\tY\tWINDOW X\tWINDOW Y")
	for _, p := range snap.Pockets {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\t[%.4f, %.4f]\t[%.4f, %.4f]\n", p.ID,
			p.X*scale, p.Y*scale,
			(p.X-p.Radius)*scale, (p.X+p.Radius)*scale,
			(p.Y-p.Radius)*scale, (p.Y+p.Radius)*scale)
	}
	w.Flush()
}
