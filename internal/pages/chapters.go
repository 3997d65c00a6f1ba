package pages

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReadChapters reads one chapter identifier per line. Blank lines and lines
// starting with '#' are ignored.
func ReadChapters(r io.Reader) ([]string, error) {
	var chapters []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		chapters = append(chapters, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chapter list: %w", err)
	}
	return chapters, nil
}
