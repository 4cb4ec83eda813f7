package remotes

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// ParseText parses the plain-text remote list format: one remote per line as
// "name url [verify_ssl]", verify_ssl defaulting to true. Parsing stops at the
// first blank line after at least one remote; legacy registry.txt files keep
// package references below it, which are not part of the remote list.
// Lines starting with '#' are comments.
func ParseText(content string) ([]Remote, error) {
	var remotes []Remote
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(remotes) > 0 {
				break
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 || len(fields) > 3 {
			return nil, fmt.Errorf("line %d: expected 'name url [verify_ssl]', got %q", lineNo, line)
		}

		rm := Remote{Name: fields[0], URL: fields[1], VerifySSL: true}
		if len(fields) == 3 {
			verify, err := strconv.ParseBool(fields[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid verify_ssl value %q", lineNo, fields[2])
			}
			rm.VerifySSL = verify
		}

		if seen[rm.Name] {
			return nil, fmt.Errorf("line %d: duplicate remote name '%s'", lineNo, rm.Name)
		}
		seen[rm.Name] = true
		remotes = append(remotes, rm)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading remote list: %w", err)
	}

	return remotes, nil
}
