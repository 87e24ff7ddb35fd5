// Package sheet renders a printable PDF character sheet (old parchment style)
// for a rolled or balanced stat set.
package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"balancedstats/internal/costtable"
	"balancedstats/internal/stats"

	"github.com/jung-kurt/gofpdf/v2"
)

const (
	pageW     = 595
	pageH     = 842
	margin    = 40
	rowH      = 26.0
	fontSize  = 10
	titleSize = 18
	labelSize = 8
)

// ErrNoRows indicates a character with nothing to print.
var ErrNoRows = errors.New("character sheet has no ability rows")

// Row is one ability line on the sheet.
type Row struct {
	Ability  stats.Ability
	Score    int
	Modifier int
	// Kept and Dropped are the dice behind the score, empty when the score
	// was not rolled.
	Kept    []int
	Dropped []int
}

// Character is everything the sheet prints.
type Character struct {
	Title      string
	State      stats.State
	PointsLeft int
	Rows       []Row
	Costs      []costtable.Range
}

// FromBalancer snapshots b. Dice are attached only while the stored scores
// still equal their rolls.
func FromBalancer(b *stats.Balancer, title string) Character {
	values := b.Stats()
	rolls := b.Rolls()
	ch := Character{
		Title:      title,
		State:      b.State(),
		PointsLeft: b.PointsLeft(),
		Rows:       make([]Row, 0, len(values)),
		Costs:      b.CostRanges(),
	}
	for i, a := range b.Order() {
		row := Row{Ability: a, Score: values[i], Modifier: stats.Modifier(values[i])}
		if i < len(rolls) && rolls[i].Total == values[i] {
			row.Kept = rolls[i].Kept
			row.Dropped = rolls[i].Dropped
		}
		ch.Rows = append(ch.Rows, row)
	}
	return ch
}

// Generate returns PDF bytes for ch.
func Generate(ch Character) ([]byte, error) {
	if len(ch.Rows) == 0 {
		return nil, ErrNoRows
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// Parchment background
	pdf.SetFillColor(245, 235, 210)
	pdf.Rect(0, 0, pageW, pageH, "F")
	drawWavyBorder(pdf)

	pdf.SetDrawColor(80, 50, 30)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetLineWidth(1)

	title := ch.Title
	if title == "" {
		title = "Ability Scores"
	}
	pdf.SetFont("Helvetica", "B", titleSize)
	pdf.SetXY(margin+20, margin+20)
	pdf.CellFormat(pageW-2*margin-40, 20, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", fontSize)
	pdf.SetXY(margin+20, margin+44)
	pdf.CellFormat(pageW-2*margin-40, 12, fmt.Sprintf("%s, %d points left", ch.State, ch.PointsLeft), "", 0, "L", false, 0, "")

	y := drawScores(pdf, ch.Rows, margin+80)
	if len(ch.Costs) > 0 {
		drawCosts(pdf, ch.Costs, y+30)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawScores prints one shield per ability with its modifier and dice, and
// returns the y below the last row.
func drawScores(pdf *gofpdf.Fpdf, rows []Row, top float64) float64 {
	x := float64(margin) + 30
	y := top
	for _, r := range rows {
		drawShield(pdf, x+18, y+rowH/2, r.Score)

		pdf.SetFont("Helvetica", "B", fontSize+2)
		pdf.SetTextColor(40, 25, 15)
		pdf.SetXY(x+48, y+4)
		pdf.CellFormat(140, 12, strings.ToUpper(string(r.Ability)), "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", fontSize)
		pdf.SetTextColor(80, 50, 30)
		pdf.SetXY(x+200, y+4)
		pdf.CellFormat(60, 12, fmt.Sprintf("%+d", r.Modifier), "", 0, "C", false, 0, "")

		if len(r.Kept) > 0 {
			pdf.SetFont("Helvetica", "", labelSize)
			pdf.SetXY(x+270, y+4)
			pdf.CellFormat(200, 12, diceLabel(r.Kept, r.Dropped), "", 0, "L", false, 0, "")
		}

		pdf.SetDrawColor(180, 150, 110)
		pdf.Line(x, y+rowH+4, pageW-margin-30, y+rowH+4)
		pdf.SetDrawColor(80, 50, 30)
		y += rowH + 10
	}
	return y
}

// drawCosts prints the point cost table as a small ledger.
func drawCosts(pdf *gofpdf.Fpdf, costs []costtable.Range, top float64) {
	x := float64(margin) + 30
	pdf.SetFont("Helvetica", "B", fontSize)
	pdf.SetTextColor(80, 50, 30)
	pdf.SetXY(x, top)
	pdf.CellFormat(200, 12, "Point costs per step", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", labelSize+1)
	for i, r := range costs {
		span := strconv.Itoa(r.Lo)
		if r.Hi != r.Lo {
			span = fmt.Sprintf("%d-%d", r.Lo, r.Hi)
		}
		pdf.SetXY(x, top+16+float64(i)*12)
		pdf.CellFormat(80, 10, span, "", 0, "L", false, 0, "")
		pdf.CellFormat(60, 10, strconv.Itoa(r.Cost), "", 0, "R", false, 0, "")
	}
}

func diceLabel(kept, dropped []int) string {
	parts := make([]string, 0, len(kept)+len(dropped))
	for _, d := range dropped {
		parts = append(parts, fmt.Sprintf("(%d)", d))
	}
	for _, d := range kept {
		parts = append(parts, strconv.Itoa(d))
	}
	return "rolled " + strings.Join(parts, " ")
}

// drawShield draws the score inside a small heraldic shield.
func drawShield(pdf *gofpdf.Fpdf, cx, cy float64, score int) {
	const w, h = 28.0, 30.0
	pts := []gofpdf.PointType{
		{X: cx - w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy - h/2},
		{X: cx + w/2, Y: cy},
		{X: cx, Y: cy + h/2},
		{X: cx - w/2, Y: cy},
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(1.2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)

	pdf.SetFont("Helvetica", "B", fontSize+2)
	pdf.SetTextColor(40, 25, 15)
	pdf.SetXY(cx-w/2, cy-h/2+6)
	pdf.CellFormat(w, 12, strconv.Itoa(score), "", 0, "C", false, 0, "")
}

// drawWavyBorder draws an organic, tattered black border around the page.
func drawWavyBorder(pdf *gofpdf.Fpdf) {
	pts := wavyRectPoints(margin, margin, pageW-2*margin, pageH-2*margin, 12, 4)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(2)
	pdf.Polygon(pts, "D")
	pdf.SetLineWidth(1)
	pdf.SetDrawColor(80, 50, 30)
}

// wavyRectPoints returns polygon points for a rectangle with sinusoidal wobble on each side.
func wavyRectPoints(x, y, w, h float64, steps int, amp float64) []gofpdf.PointType {
	pts := make([]gofpdf.PointType, 0, steps*4+4)
	edge := func(n int, at func(t float64, i int) gofpdf.PointType) {
		for i := n; i <= steps; i++ {
			pts = append(pts, at(float64(i)/float64(steps), i))
		}
	}
	edge(0, func(t float64, i int) gofpdf.PointType {
		return gofpdf.PointType{X: x + t*w + amp*math.Sin(float64(i)*0.7), Y: y + amp*math.Cos(float64(i)*0.5)}
	})
	edge(1, func(t float64, i int) gofpdf.PointType {
		return gofpdf.PointType{X: x + w + amp*math.Sin(float64(i)*0.6), Y: y + t*h + amp*math.Cos(float64(i)*0.4)}
	})
	edge(1, func(t float64, i int) gofpdf.PointType {
		return gofpdf.PointType{X: x + w - t*w + amp*math.Sin(float64(i)*0.8), Y: y + h + amp*math.Cos(float64(i)*0.3)}
	})
	edge(1, func(t float64, i int) gofpdf.PointType {
		return gofpdf.PointType{X: x + amp*math.Sin(float64(i)*0.5), Y: y + h - t*h + amp*math.Cos(float64(i)*0.6)}
	})
	return pts
}
