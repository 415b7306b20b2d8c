package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	imageExtRegex  = regexp.MustCompile(`(?i)\.(png|jpg|jpeg|webp)$`)
	imageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]+(?:-[A-Za-z0-9]+)*)(?:_(\d+))?$`)
)

// ParseImageFileName parses a product image filename following the pattern:
// CODE[_N].EXT
// Example: COL-012_2.jpg -> code "COL-012", position 2
// Without a suffix the position is 0.
func ParseImageFileName(filename string) (code string, position int, err error) {
	if !imageExtRegex.MatchString(filename) {
		return "", 0, fmt.Errorf("invalid image extension: %s", filename)
	}
	name := imageExtRegex.ReplaceAllString(strings.TrimSpace(filename), "")

	matches := imageNameRegex.FindStringSubmatch(name)
	if matches == nil {
		return "", 0, fmt.Errorf("invalid filename format: expected CODE or CODE_N, got %s", name)
	}

	code = strings.ToUpper(matches[1])
	if matches[2] != "" {
		position, err = strconv.Atoi(matches[2])
		if err != nil {
			return "", 0, fmt.Errorf("invalid image position %q: %w", matches[2], err)
		}
	}
	return code, position, nil
}
