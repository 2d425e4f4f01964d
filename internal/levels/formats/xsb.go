package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-sokoban/internal/sokoban"
)

// Tile ids of the classic tileset used for XSB boards.
const (
	ClassicFloor = 1
	ClassicWall  = 2
	ClassicSpawn = 3
	ClassicCrate = 4
	ClassicGoal  = 5
	ClassicHole  = 6
)

// ClassicTiles returns the tileset XSB boards are converted with.
func ClassicTiles() []sokoban.TileDef {
	return []sokoban.TileDef{
		{ID: ClassicFloor, Type: "floor"},
		{ID: ClassicWall, Type: "solid"},
		{ID: ClassicSpawn, Type: "spawn"},
		{ID: ClassicCrate, Type: "crate"},
		{ID: ClassicGoal, Type: "goal"},
		{ID: ClassicHole, Type: "hole"},
	}
}

const xsbBoardChars = "#@+$*. -_^"

// ParseXSB parses a file of one or more XSB boards separated by blank or
// text lines. Notes before a board describe it: "; title" or "Title: x"
// names it, "Author: x" credits it, other "Key: value" lines become
// metadata. Levels get sequential IDs "<prefix>-NN".
func ParseXSB(data []byte, prefix string) ([]Level, error) {
	var (
		levels []Level
		board  []string
		title  string
		author string
		meta   = map[string]string{}
	)

	flush := func() error {
		if len(board) == 0 {
			return nil
		}
		idx := len(levels) + 1
		lvl, err := boardLevel(board)
		if err != nil {
			return fmt.Errorf("board %d: %w", idx, err)
		}
		lvl.ID = fmt.Sprintf("%s-%02d", prefix, idx)
		lvl.Name = title
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", idx)
		}
		lvl.Author = author
		if len(meta) > 0 {
			lvl.Metadata = meta
		}
		levels = append(levels, lvl)

		board = nil
		title, author, meta = "", "", map[string]string{}
		return nil
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if isBoardLine(line) {
			board = append(board, line)
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}

		text := strings.TrimSpace(line)
		switch {
		case text == "":
		case strings.HasPrefix(text, ";"):
			title = strings.TrimSpace(strings.TrimPrefix(text, ";"))
		default:
			key, value, ok := strings.Cut(text, ":")
			if !ok {
				title = text
				continue
			}
			key, value = strings.TrimSpace(key), strings.TrimSpace(value)
			switch strings.ToLower(key) {
			case "title":
				title = value
			case "author":
				author = value
			default:
				meta[strings.ToLower(key)] = value
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading xsb: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if len(levels) == 0 {
		return nil, fmt.Errorf("%w: no boards found", sokoban.ErrMalformedLevel)
	}
	return levels, nil
}

// isBoardLine reports whether the line is a board row: only board
// characters and at least one wall.
func isBoardLine(line string) bool {
	if !strings.Contains(line, "#") {
		return false
	}
	for _, ch := range line {
		if !strings.ContainsRune(xsbBoardChars, ch) {
			return false
		}
	}
	return true
}

// boardLevel converts board rows into a two-layer tile map. Floor outside
// the walls (unreachable from the player) becomes empty.
func boardLevel(rows []string) (Level, error) {
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	h := len(rows)

	ground := make([][]int, h)
	objects := make([][]int, h)
	start := sokoban.Position{X: -1, Y: -1}

	for y, r := range rows {
		ground[y] = make([]int, w)
		objects[y] = make([]int, w)
		for x := 0; x < w; x++ {
			ch := byte(' ')
			if x < len(r) {
				ch = r[x]
			}
			switch ch {
			case '#':
				ground[y][x] = ClassicWall
			case '^':
				ground[y][x] = ClassicHole
			default:
				ground[y][x] = ClassicFloor
			}
			switch ch {
			case '@':
				objects[y][x] = ClassicSpawn
			case '+':
				objects[y][x] = ClassicSpawn
				ground[y][x] = ClassicGoal
			case '$':
				objects[y][x] = ClassicCrate
			case '*':
				objects[y][x] = ClassicCrate
				ground[y][x] = ClassicGoal
			case '.':
				ground[y][x] = ClassicGoal
			}
			if ch == '@' || ch == '+' {
				if start.X >= 0 {
					return Level{}, fmt.Errorf("%w: more than one player", sokoban.ErrMissingSpawn)
				}
				start = sokoban.P(x, y)
			}
		}
	}
	if start.X < 0 {
		return Level{}, fmt.Errorf("%w: no player", sokoban.ErrMissingSpawn)
	}

	inside := reachable(ground, start)
	for y := range ground {
		for x := range ground[y] {
			if ground[y][x] == ClassicGoal && !inside[y][x] {
				return Level{}, fmt.Errorf("%w: goal at %v is outside the walls", sokoban.ErrMalformedLevel, sokoban.P(x, y))
			}
		}
	}
	for y := range ground {
		for x := range ground[y] {
			if ground[y][x] != ClassicWall && !inside[y][x] && objects[y][x] == 0 {
				ground[y][x] = 0
			}
		}
	}

	return Level{
		Tiles: ClassicTiles(),
		Map: sokoban.TileMap{
			Width:  w,
			Height: h,
			Layers: []sokoban.Layer{
				{Name: "ground", Tiles: ground},
				{Name: "objects", Tiles: objects},
			},
		},
	}, nil
}

// reachable flood-fills non-wall cells from start.
func reachable(ground [][]int, start sokoban.Position) [][]bool {
	h := len(ground)
	seen := make([][]bool, h)
	for y := range seen {
		seen[y] = make([]bool, len(ground[y]))
	}

	stack := []sokoban.Position{start}
	seen[start.Y][start.X] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range sokoban.Directions {
			n := p.Step(d)
			if n.Y < 0 || n.Y >= h || n.X < 0 || n.X >= len(ground[n.Y]) {
				continue
			}
			if seen[n.Y][n.X] || ground[n.Y][n.X] == ClassicWall {
				continue
			}
			seen[n.Y][n.X] = true
			stack = append(stack, n)
		}
	}
	return seen
}

// FormatXSB renders a level and state back to XSB rows. Dropped crates are
// shown as floor, unfilled holes as '^'.
func FormatXSB(lvl *sokoban.Level, s *sokoban.State) string {
	return FormatSnapshot(lvl, s.Snapshot())
}

// FormatSnapshot renders a level with the state captured in snap.
func FormatSnapshot(lvl *sokoban.Level, snap sokoban.Snapshot) string {
	crates := make(map[sokoban.Position]bool, len(snap.Crates))
	for _, c := range snap.Crates {
		crates[c.Pos] = true
	}
	filled := make(map[sokoban.Position]bool, len(snap.Dropped))
	for _, c := range snap.Dropped {
		filled[c.Pos] = true
	}

	g := lvl.Grid()
	var b strings.Builder
	for y := 0; y < g.Height(); y++ {
		row := make([]byte, g.Width())
		for x := 0; x < g.Width(); x++ {
			p := sokoban.P(x, y)
			_, goal := lvl.GoalAt(p)
			crate := crates[p]
			player := snap.Player == p

			switch {
			case player && goal:
				row[x] = '+'
			case player:
				row[x] = '@'
			case crate && goal:
				row[x] = '*'
			case crate:
				row[x] = '$'
			case goal:
				row[x] = '.'
			default:
				switch g.At(p) {
				case sokoban.CellSolid:
					row[x] = '#'
				case sokoban.CellHole:
					if filled[p] {
						row[x] = ' '
					} else {
						row[x] = '^'
					}
				default:
					row[x] = ' '
				}
			}
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
