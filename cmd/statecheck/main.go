// Command statecheck validates fighter definition files. With -watch it keeps
// running and re-validates each definition as it changes.
package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/fightcore/shared/statedata"
	"github.com/automoto/fightcore/shared/watch"
)

func main() {
	watchFlag := flag.Bool("watch", false, "Keep running and re-validate definitions when they change")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"assets/fighters"}
	}

	ok := true
	for _, p := range paths {
		if !checkPath(p) {
			ok = false
		}
	}

	if !*watchFlag {
		if !ok {
			os.Exit(1)
		}
		return
	}

	w, err := watch.New(paths...)
	if err != nil {
		log.Fatalf("Failed to watch definitions: %v", err)
	}
	defer w.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	log.Printf("Watching %d path(s) for changes", len(paths))
	for {
		select {
		case name, open := <-w.Events:
			if !open {
				return
			}
			if _, err := os.Stat(name); errors.Is(err, os.ErrNotExist) {
				log.Printf("%s removed", name)
				continue
			}
			checkFile(name)
		case err, open := <-w.Errors:
			if !open {
				return
			}
			log.Printf("Watch error: %v", err)
		case <-sigChan:
			log.Println("Stopping")
			return
		}
	}
}

func checkPath(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		log.Printf("FAIL %s: %v", path, err)
		return false
	}
	if !info.IsDir() {
		return checkFile(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		log.Printf("FAIL %s: %v", path, err)
		return false
	}
	ok, found := true, false
	for _, e := range entries {
		if e.IsDir() || !watch.IsDefinitionFile(e.Name()) {
			continue
		}
		found = true
		if !checkFile(filepath.Join(path, e.Name())) {
			ok = false
		}
	}
	if !found {
		log.Printf("FAIL %s: no fighter definitions found", path)
		return false
	}
	return ok
}

func checkFile(path string) bool {
	table, err := statedata.Load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	if err != nil {
		log.Printf("FAIL %s", path)
		for _, e := range flatten(err) {
			log.Printf("  %v", e)
		}
		return false
	}
	log.Printf("ok   %s: %s", path, table)
	return true
}

// flatten lists the individual problems behind err so each prints on its own
// line.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
