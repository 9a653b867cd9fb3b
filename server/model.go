package server

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/zucenko/conga/model"
)

//go:embed data/levels.txt
var defaultLevels []byte

var (
	ErrBadConfig      = errors.New("bad config value")
	ErrNoHeader       = errors.New("layout row before level header")
	ErrBadHeader      = errors.New("bad level header")
	ErrBadCell        = errors.New("bad cell code")
	ErrDuplicateLevel = errors.New("duplicate level number")
	ErrNoLevels       = errors.New("no levels")
)

// LoadLevels reads the level catalogue from path, or the built-in levels when
// path is empty.
func LoadLevels(path string) ([]model.LevelConfig, error) {
	if path == "" {
		return read(bytes.NewReader(defaultLevels))
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	levels, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levels, nil
}

// read parses blocks of the form
//
//	level <n> [actions <m>]
//	<code> <code> ...
//
// one layout row per line. Blank lines and lines starting with # are skipped.
func read(reader io.Reader) ([]model.LevelConfig, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Split(bufio.ScanLines)
	levels := make([]model.LevelConfig, 0)
	seen := make(map[int]bool)
	var current *model.LevelConfig
	line := 0

	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if fields[0] == "level" {
			cfg, err := header(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if seen[cfg.Number] {
				return nil, fmt.Errorf("line %d: level %d: %w", line, cfg.Number, ErrDuplicateLevel)
			}
			seen[cfg.Number] = true
			levels = append(levels, cfg)
			current = &levels[len(levels)-1]
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: %w", line, ErrNoHeader)
		}
		row := make([]int, 0, len(fields))
		for _, f := range fields {
			code, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("line %d: %q: %w", line, f, ErrBadCell)
			}
			row = append(row, code)
		}
		current.Layout = append(current.Layout, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for _, l := range levels {
		if _, err := model.DecodeLayout(l.Layout, model.DefaultCellSize); err != nil {
			return nil, fmt.Errorf("level %d: %w", l.Number, err)
		}
	}
	return levels, nil
}

func header(fields []string) (model.LevelConfig, error) {
	cfg := model.LevelConfig{Actions: model.DefaultActions}
	if len(fields) != 2 && len(fields) != 4 {
		return cfg, ErrBadHeader
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n <= 0 {
		return cfg, ErrBadHeader
	}
	cfg.Number = n
	if len(fields) == 4 {
		a, err := strconv.Atoi(fields[3])
		if fields[2] != "actions" || err != nil || a <= 0 {
			return cfg, ErrBadHeader
		}
		cfg.Actions = a
	}
	return cfg, nil
}
