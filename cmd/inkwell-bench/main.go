// Command inkwell-bench loads a text file into a Buffer, drives a batch of
// edits and undo/redo round-trips over it, and reports timing and counts.
// It exists to exercise the rope/buffer core end-to-end from outside its
// test suites.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/inkwell-editor/inkwell/buffer"
)

func main() {
	path := flag.String("file", "", "path to a UTF-8 text file to load")
	edits := flag.Int("edits", 1000, "number of insert edits to perform")
	undoRatio := flag.Int("undo-every", 10, "undo and redo every N edits (0 disables)")
	flag.Parse()

	if *path == "" {
		log.Fatal("inkwell-bench: -file is required")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("inkwell-bench: open %s: %v", *path, err)
	}
	defer f.Close()

	loadStart := time.Now()
	buf, err := buffer.Load(f, buffer.FileOrigin(*path))
	if err != nil {
		log.Fatalf("inkwell-bench: load %s: %v", *path, err)
	}
	loadElapsed := time.Since(loadStart)

	fmt.Printf("loaded %s in %v\n", *path, loadElapsed)
	fmt.Printf("scalars=%d lines=%d line_ending=%s soft_tabs=%v soft_tab_width=%d\n",
		buf.ScalarCount(), buf.LineCount(), buf.LineEnding.String(), buf.SoftTabs, buf.SoftTabWidth)

	editStart := time.Now()
	for i := 0; i < *edits; i++ {
		at := i % (buf.ScalarCount() + 1)
		if err := buf.Edit(at, at, "x"); err != nil {
			log.Fatalf("inkwell-bench: edit %d: %v", i, err)
		}
		if *undoRatio > 0 && (i+1)%*undoRatio == 0 {
			if _, _, ok := buf.Undo(); !ok {
				log.Fatalf("inkwell-bench: undo failed at edit %d", i)
			}
			if _, _, ok := buf.Redo(); !ok {
				log.Fatalf("inkwell-bench: redo failed at edit %d", i)
			}
		}
	}
	editElapsed := time.Since(editStart)

	fmt.Printf("performed %d edits (undo/redo every %d) in %v\n", *edits, *undoRatio, editElapsed)
	fmt.Printf("final scalars=%d height=%d\n", buf.ScalarCount(), buf.Rope.Height())
}
