package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolvePath turns the default path "." into inputs/dayN.txt.
// Any other path is returned unchanged.
func resolvePath(day int, path string) string {
	if path != "." {
		return path
	}
	return filepath.Join("inputs", fmt.Sprintf("day%d.txt", day))
}

// forLines calls fn with each line of the named file and its 1-based
// line number. Blank lines at the end of the file are dropped; blank lines
// followed by more input are passed to fn like any other. It stops at the
// first error returned by fn.
func forLines(name string, fn func(n int, line string) error) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("could not read input: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	var blank []string
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			blank = append(blank, line)
			continue
		}
		for i, b := range blank {
			if err := fn(n-len(blank)+i, b); err != nil {
				return err
			}
		}
		blank = blank[:0]
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", name, err)
	}
	return nil
}
