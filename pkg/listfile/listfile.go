// Package listfile reads the plain-text item lists humansort starts from.
//
// A list has one item per line. Surrounding whitespace is trimmed, blank
// lines are skipped and repeated items keep their first position.
package listfile

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/agentstation/humansort/pkg/errors"
)

// Parse reads a list from r.
func Parse(r io.Reader) ([]string, error) {
	var items []string
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadFile reads a list from the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	defer f.Close() //nolint:errcheck

	items, err := Parse(f)
	if err != nil {
		return nil, errors.WrapParse("list", path, err)
	}
	return items, nil
}

// Write writes items one per line.
func Write(w io.Writer, items []string) error {
	bw := bufio.NewWriter(w)
	for _, item := range items {
		if _, err := bw.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
