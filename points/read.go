package points

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/gmlewis/giftwrap/vec2"
	"github.com/pkg/errors"
)

// Read parses one "x y" point per line from r. Blank lines and lines
// starting with '#' are ignored.
func Read(r io.Reader) (*Set, error) {
	var pts []vec2.Vec2
	scanner := bufio.NewScanner(r)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) != 2 {
			return nil, errors.Errorf("line %v: want 2 coordinates, found %v", lineNum, len(parts))
		}
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %v: invalid x value", lineNum)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, errors.Wrapf(err, "line %v: invalid y value", lineNum)
		}
		pts = append(pts, vec2.New(x, y))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read points")
	}

	return FromPoints(pts)
}
