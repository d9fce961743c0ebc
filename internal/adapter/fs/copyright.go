package fs

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// CopyrightFromHeader scans an original header source for its copyright
// notice, the " * Copyright ..." line of a conventional license block,
// and returns it without the comment prefix.
func CopyrightFromHeader(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, " * Copyright") {
			return line[3:], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("no copyright line in %s", path)
}
