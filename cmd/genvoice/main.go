package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/daruma/internal/config"
	"chosenoffset.com/daruma/internal/placeholders"
)

func main() {
	dir := flag.String("dir", config.DefaultConfig().Voice.Dir, "output directory")
	count := flag.Int("count", len(placeholders.Beats), "number of clips")
	flag.Parse()

	fmt.Println("Daruma Placeholder Voice Generator")
	fmt.Println("==================================")
	fmt.Println()

	paths, err := placeholders.GenerateAndSave(*dir, *count)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, p := range paths {
		fmt.Printf("  wrote %s\n", p)
	}
	fmt.Println()
	fmt.Println("Done! Run the game with voice enabled to hear them.")
}
