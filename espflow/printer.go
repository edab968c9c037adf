package espflow

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

const boxWidth = 63

// printer renders the workflow's console output. All step output goes
// through it so tests can capture a run from a plain buffer.
type printer struct {
	out io.Writer

	heading func(a ...interface{}) string
	good    func(a ...interface{}) string
	bad     func(a ...interface{}) string
	note    func(a ...interface{}) string
}

func newPrinter(out io.Writer, useColor bool) *printer {
	p := &printer{out: out}
	if useColor {
		p.heading = color.New(color.FgCyan, color.Bold).SprintFunc()
		p.good = color.New(color.FgGreen).SprintFunc()
		p.bad = color.New(color.FgRed).SprintFunc()
		p.note = color.New(color.FgYellow).SprintFunc()
	} else {
		p.heading = fmt.Sprint
		p.good = fmt.Sprint
		p.bad = fmt.Sprint
		p.note = fmt.Sprint
	}
	return p
}

// box prints a banner line framed in box-drawing characters.
func (p *printer) box(title string) {
	bar := strings.Repeat("═", boxWidth)
	pad := boxWidth - 3 - utf8.RuneCountInString(title)
	if pad < 0 {
		pad = 0
	}
	fmt.Fprintln(p.out, p.heading("╔"+bar+"╗"))
	fmt.Fprintln(p.out, p.heading("║   "+title+strings.Repeat(" ", pad)+"║"))
	fmt.Fprintln(p.out, p.heading("╚"+bar+"╝"))
}

// step prints a step banner.
func (p *printer) step(n int, title string) {
	fmt.Fprintf(p.out, "\n%s\n", p.heading(fmt.Sprintf("=== Step %d: %s ===", n, title)))
}

// linef prints an unprefixed progress line.
func (p *printer) linef(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// okf prints a success line.
func (p *printer) okf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.good("✓ "+fmt.Sprintf(format, args...)))
}

// errf prints a failure line.
func (p *printer) errf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.bad("✗ "+fmt.Sprintf(format, args...)))
}

// warnf prints a warning line.
func (p *printer) warnf(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.note("⚠  "+fmt.Sprintf(format, args...)))
}

// fieldf prints an indented field echo.
func (p *printer) fieldf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "  "+format+"\n", args...)
}

// itemf prints a list item.
func (p *printer) itemf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "  - "+format+"\n", args...)
}

// detailf prints a field under a list item.
func (p *printer) detailf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "    "+format+"\n", args...)
}

func (p *printer) blank() {
	fmt.Fprintln(p.out)
}
