package parser

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z_0-9]*$`)
	equalsPattern = regexp.MustCompile(`\s*=\s*`)
)

// SyntaxError reports a malformed line of a board file.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return "parse: " + e.Msg
	}
	return fmt.Sprintf("parse: line %d: %s", e.Line, e.Msg)
}

// ParseFile reads a board from path. Files ending in .yaml or .yml are read
// as YAML and everything else as .fb.
func ParseFile(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d *Description
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err = ParseYAML(data)
	default:
		d, err = ParseFB(string(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseYAML reads a YAML board. Omitted coefficients take the board defaults.
func ParseYAML(data []byte) (*Description, error) {
	d := DefaultDescription("")
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	if d.Name == "" {
		return nil, &SyntaxError{Msg: "board name is required"}
	}
	if err := checkNames(d); err != nil {
		return nil, err
	}
	return d, nil
}

// checkNames holds YAML boards to the same name rule as .fb lines.
func checkNames(d *Description) error {
	names := []string{d.Name}
	for _, b := range d.Balls {
		names = append(names, b.Name)
	}
	for _, g := range d.Gadgets {
		names = append(names, g.Name)
	}
	for _, f := range d.Fire {
		names = append(names, f.Trigger, f.Action)
	}
	for _, n := range names {
		if !namePattern.MatchString(n) {
			return &SyntaxError{Msg: fmt.Sprintf("invalid name %q", n)}
		}
	}
	return nil
}

// ParseFB reads a board in the .fb format. The board line must come first;
// everything after a '#' is ignored. Fire directives may name gadgets
// declared later in the file.
func ParseFB(src string) (*Description, error) {
	var d *Description

	for i, raw := range strings.Split(src, "\n") {
		if idx := strings.IndexByte(raw, '#'); idx >= 0 {
			raw = raw[:idx]
		}
		tokens := strings.Fields(equalsPattern.ReplaceAllString(raw, "="))
		if len(tokens) == 0 {
			continue
		}

		l, err := newLine(i+1, tokens)
		if err != nil {
			return nil, err
		}
		if d == nil && l.keyword != "board" {
			return nil, l.errorf("expected board declaration before %q", l.keyword)
		}

		switch l.keyword {
		case "board":
			if d != nil {
				return nil, l.errorf("duplicate board declaration")
			}
			if d, err = l.board(); err != nil {
				return nil, err
			}
		case "ball":
			b, err := l.ball()
			if err != nil {
				return nil, err
			}
			d.Balls = append(d.Balls, b)
		case SquareBumper, CircleBumper, TriangleBumper, Absorber:
			g, err := l.gadget()
			if err != nil {
				return nil, err
			}
			d.Gadgets = append(d.Gadgets, g)
		case "fire":
			f, err := l.fire()
			if err != nil {
				return nil, err
			}
			d.Fire = append(d.Fire, f)
		default:
			return nil, l.errorf("unknown keyword %q", l.keyword)
		}
	}

	if d == nil {
		return nil, &SyntaxError{Msg: "missing board declaration"}
	}
	return d, nil
}

// line is one declaration: a keyword followed by key=value attributes.
type line struct {
	num     int
	keyword string
	attrs   map[string]string
}

func newLine(num int, tokens []string) (*line, error) {
	l := &line{num: num, keyword: tokens[0], attrs: make(map[string]string, len(tokens)-1)}
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" || value == "" {
			return nil, l.errorf("malformed attribute %q", tok)
		}
		if _, dup := l.attrs[key]; dup {
			return nil, l.errorf("duplicate attribute %q", key)
		}
		l.attrs[key] = value
	}
	return l, nil
}

func (l *line) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Line: l.num, Msg: fmt.Sprintf(format, args...)}
}

func (l *line) only(keys ...string) error {
	for key := range l.attrs {
		known := false
		for _, k := range keys {
			if k == key {
				known = true
				break
			}
		}
		if !known {
			return l.errorf("%s does not take attribute %q", l.keyword, key)
		}
	}
	return nil
}

func (l *line) name(key string) (string, error) {
	v, ok := l.attrs[key]
	if !ok {
		return "", l.errorf("%s requires %s", l.keyword, key)
	}
	if !namePattern.MatchString(v) {
		return "", l.errorf("invalid name %q", v)
	}
	return v, nil
}

func (l *line) float(key string) (float64, error) {
	v, ok := l.attrs[key]
	if !ok {
		return 0, l.errorf("%s requires %s", l.keyword, key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, l.errorf("%s: %q is not a number", key, v)
	}
	return f, nil
}

func (l *line) optFloat(key string, def float64) (float64, error) {
	if _, ok := l.attrs[key]; !ok {
		return def, nil
	}
	return l.float(key)
}

func (l *line) int(key string) (int, error) {
	v, ok := l.attrs[key]
	if !ok {
		return 0, l.errorf("%s requires %s", l.keyword, key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, l.errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func (l *line) board() (*Description, error) {
	if err := l.only("name", "gravity", "friction1", "friction2"); err != nil {
		return nil, err
	}
	name, err := l.name("name")
	if err != nil {
		return nil, err
	}
	d := DefaultDescription(name)
	if d.Gravity, err = l.optFloat("gravity", d.Gravity); err != nil {
		return nil, err
	}
	if d.Friction1, err = l.optFloat("friction1", d.Friction1); err != nil {
		return nil, err
	}
	if d.Friction2, err = l.optFloat("friction2", d.Friction2); err != nil {
		return nil, err
	}
	return d, nil
}

func (l *line) ball() (BallSpec, error) {
	var b BallSpec
	if err := l.only("name", "x", "y", "xVelocity", "yVelocity"); err != nil {
		return b, err
	}
	var err error
	if b.Name, err = l.name("name"); err != nil {
		return b, err
	}
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"x", &b.X},
		{"y", &b.Y},
		{"xVelocity", &b.XVelocity},
		{"yVelocity", &b.YVelocity},
	} {
		if *f.dst, err = l.float(f.key); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (l *line) gadget() (GadgetSpec, error) {
	g := GadgetSpec{Kind: l.keyword}
	keys := []string{"name", "x", "y"}
	switch l.keyword {
	case TriangleBumper:
		keys = append(keys, "orientation")
	case Absorber:
		keys = append(keys, "width", "height")
	}
	if err := l.only(keys...); err != nil {
		return g, err
	}

	var err error
	if g.Name, err = l.name("name"); err != nil {
		return g, err
	}
	if g.X, err = l.int("x"); err != nil {
		return g, err
	}
	if g.Y, err = l.int("y"); err != nil {
		return g, err
	}

	switch l.keyword {
	case TriangleBumper:
		if _, ok := l.attrs["orientation"]; ok {
			if g.Orientation, err = l.int("orientation"); err != nil {
				return g, err
			}
		}
	case Absorber:
		if g.Width, err = l.int("width"); err != nil {
			return g, err
		}
		if g.Height, err = l.int("height"); err != nil {
			return g, err
		}
	}
	return g, nil
}

func (l *line) fire() (FireSpec, error) {
	var f FireSpec
	if err := l.only("trigger", "action"); err != nil {
		return f, err
	}
	var err error
	if f.Trigger, err = l.name("trigger"); err != nil {
		return f, err
	}
	if f.Action, err = l.name("action"); err != nil {
		return f, err
	}
	return f, nil
}
