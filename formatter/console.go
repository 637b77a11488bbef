package formatter

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/btindex"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Config controls console output.
type Config struct {
	LineWidth int            // wrap nodes wider than this; 0 means no wrapping
	Color     bool           // use colors for node kinds
	Context   *uax11.Context // context for character widths; nil means uax11.LatinContext
}

// Palette holds the colors used for different parts of a node.
type Palette struct {
	Inner  *color.Color
	Leaf   *color.Color
	Vacant *color.Color
}

// DefaultPalette returns the palette used by Print.
func DefaultPalette() Palette {
	return Palette{
		Inner:  color.New(color.FgBlue, color.Bold),
		Leaf:   color.New(color.FgGreen),
		Vacant: color.New(color.Faint),
	}
}

// Indent is the number of positions each level of depth is indented by.
const Indent = 2

var setupGraphemes sync.Once

// Print writes the nodes of tree to w, one node per line, in the order of
// tree.Layout().
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive). Config.Context
// will then be created based on heuristics from the user environment.
func Print[K, V any](w io.Writer, tree *btindex.Tree[K, V], config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return PrintWithPalette(w, tree, config, DefaultPalette())
}

// PrintWithPalette is like Print, but uses the colors of palette. config must
// not be nil.
func PrintWithPalette[K, V any](w io.Writer, tree *btindex.Tree[K, V], config *Config, palette Palette) error {
	if tree == nil {
		return fmt.Errorf("formatter: cannot print nil tree")
	}
	setupGraphemes.Do(func() { grapheme.SetupGraphemeClasses() })
	ctx := config.Context
	if ctx == nil {
		ctx = uax11.LatinContext
	}
	layout := tree.Layout()
	rows := make([]row, len(layout))
	cellwidth := 0
	for i, node := range layout {
		rows[i] = row{depth: node.Depth, leaf: node.Leaf, cells: make([]cell, len(node.Slots))}
		for j, slot := range node.Slots {
			rows[i].cells[j] = cell{text: slot.String(), used: slot.Used}
			cellwidth = max(cellwidth, width(rows[i].cells[j].text, ctx))
		}
	}
	tracer().Debugf("printing %d nodes, cell width is %d en", len(rows), cellwidth)
	p := newPrinter(w, config, palette)
	for _, r := range rows {
		p.row(r, cellwidth, ctx)
	}
	return p.err
}

// row is a node prepared for printing.
type row struct {
	depth int
	leaf  bool
	cells []cell
}

type cell struct {
	text string
	used bool
}

// printer writes padded cells and remembers the first write error.
type printer struct {
	w       io.Writer
	config  *Config
	palette Palette
	err     error
}

func newPrinter(w io.Writer, config *Config, palette Palette) *printer {
	p := &printer{w: w, config: config, palette: palette}
	for _, c := range []*color.Color{palette.Inner, palette.Leaf, palette.Vacant} {
		if c == nil {
			continue
		}
		if config.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// row prints the cells of a node, wrapping onto continuation lines indented
// one level deeper whenever the line width would be exceeded.
func (p *printer) row(r row, cellwidth int, ctx *uax11.Context) {
	indent := r.depth * Indent
	p.write(strings.Repeat(" ", indent))
	col := indent
	for i, c := range r.cells {
		if i > 0 {
			if p.config.LineWidth > 0 && col+1+cellwidth > p.config.LineWidth {
				p.write("\n")
				col = indent + Indent
				p.write(strings.Repeat(" ", col))
			} else {
				p.write(" ")
				col++
			}
		}
		text := c.text
		if i < len(r.cells)-1 {
			text = pad(text, cellwidth, ctx)
		}
		p.write(p.colorize(text, r.leaf, c.used))
		col += cellwidth
	}
	p.write("\n")
}

func (p *printer) colorize(s string, leaf, used bool) string {
	c := p.palette.Inner
	if !used {
		c = p.palette.Vacant
	} else if leaf {
		c = p.palette.Leaf
	}
	if c == nil || !p.config.Color {
		return s
	}
	return c.Sprint(s)
}

// width is the number of fixed-width positions s occupies on a console.
//
// uax11 classifies digits, '#' and '*' as emoji (they are keycap bases) and
// measures them as wide. Single-byte graphemes are therefore measured here,
// everything else is left to uax11.
func width(s string, ctx *uax11.Context) int {
	gs := grapheme.StringFromString(s)
	w := 0
	for i := 0; i < gs.Len(); i++ {
		g := gs.Nth(i)
		if len(g) == 1 {
			if g[0] >= 0x20 && g[0] < 0x7f {
				w++
			}
			continue
		}
		w += uax11.Width([]byte(g), ctx)
	}
	return w
}

// pad appends spaces to s until it occupies w positions.
func pad(s string, w int, ctx *uax11.Context) string {
	if n := w - width(s, ctx); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly. Colors are enabled for
// terminals only.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(1) {
		config.Color = true
		w, _, err := term.GetSize(1)
		if err != nil {
			config.LineWidth = 80
		} else if w > 20 {
			config.LineWidth = w - 2
		} else {
			config.LineWidth = 20
		}
	} else {
		config.LineWidth = 80
	}
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
