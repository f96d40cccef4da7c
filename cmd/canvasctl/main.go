// canvasctl inspects a saved scene outside the server. It reads the scene
// blob straight from the SQLite file and prints it or copies it to the
// system clipboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/atotto/clipboard"

	"designcanvas/infrastructure/persistence/sqlite"
)

func main() {
	dbPath := flag.String("db", "designcanvas.db", "path to the scene database")
	blobKey := flag.String("key", "scene/current", "blob key of the saved scene")
	copyFlag := flag.Bool("copy", false, "copy the scene JSON to the clipboard instead of printing it")
	flag.Parse()

	store, err := sqlite.NewBlobStore(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	data, found, err := store.Get(context.Background(), *blobKey)
	if err != nil {
		log.Fatalf("Failed to read scene: %v", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "no saved scene under key %q\n", *blobKey)
		os.Exit(1)
	}

	if *copyFlag {
		if err := clipboard.WriteAll(string(data)); err != nil {
			log.Fatalf("Failed to copy to clipboard: %v", err)
		}
		fmt.Printf("copied %d bytes to clipboard\n", len(data))
		return
	}

	os.Stdout.Write(data)
	fmt.Println()
}
