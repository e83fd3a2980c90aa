package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/dmitrijs2005/resumebook/internal/client/book"
	"github.com/dmitrijs2005/resumebook/internal/client/models"
)

// cardWidth is the width of one grid card in columns, gap excluded.
const cardWidth = 28

var (
	titleColor    = color.New(color.Bold)
	selectedColor = color.New(color.FgGreen, color.Bold)
	mutedColor    = color.New(color.Faint)
	errColor      = color.New(color.FgRed)
	okColor       = color.New(color.FgGreen)
)

// render prints the header, the filtered résumés in the current view mode
// and the action bar.
func render(w io.Writer, b *book.Book) {
	renderHeader(w, b)

	rs := b.Filtered()
	if len(rs) == 0 {
		mutedColor.Fprintln(w, "No resumes to show.")
	} else if b.View() == models.ViewGrid {
		renderGrid(w, b, rs)
	} else {
		renderList(w, b, rs)
	}

	renderActions(w, b)
}

func renderHeader(w io.Writer, b *book.Book) {
	f := b.Filter()
	year, major := f.GraduationYear, f.Major
	if year == "" {
		year = "any"
	}
	if major == "" {
		major = "any"
	}
	titleColor.Fprintf(w, "Resume Book [%s]\n", b.View())
	mutedColor.Fprintf(w, "year: %s  major: %s  showing %d of %d, %d selected\n",
		year, major, len(b.Filtered()), len(b.All()), b.SelectionSize())
}

func renderList(w io.Writer, b *book.Book, rs []models.Resume) {
	for _, r := range rs {
		line := fmt.Sprintf("%s %-8s %-24s %-24s %s",
			marker(b.IsSelected(r.ID)), fit(r.ID, 8), fit(r.Name, 24), fit(r.Major, 24), r.GraduationYear)
		if b.IsSelected(r.ID) {
			selectedColor.Fprintln(w, line)
		} else {
			fmt.Fprintln(w, line)
		}
	}
}

// renderGrid packs cards into rows as wide as the current layout allows.
func renderGrid(w io.Writer, b *book.Book, rs []models.Resume) {
	perRow := (b.Width() / cellWidth) / (cardWidth + 2)
	if perRow < 1 {
		perRow = 1
	}

	for start := 0; start < len(rs); start += perRow {
		end := min(start+perRow, len(rs))
		row := rs[start:end]

		border := "+" + strings.Repeat("-", cardWidth-2) + "+"
		lines := [][]string{
			repeat(border, len(row)),
			make([]string, 0, len(row)),
			make([]string, 0, len(row)),
			make([]string, 0, len(row)),
			repeat(border, len(row)),
		}
		for _, r := range row {
			lines[1] = append(lines[1], cardLine(marker(b.IsSelected(r.ID))+" "+r.Name))
			lines[2] = append(lines[2], cardLine(r.Major))
			lines[3] = append(lines[3], cardLine(r.GraduationYear+"  #"+r.ID))
		}

		for _, cells := range lines {
			for i, cell := range cells {
				if i > 0 {
					fmt.Fprint(w, "  ")
				}
				if b.IsSelected(row[i].ID) {
					selectedColor.Fprint(w, cell)
				} else {
					fmt.Fprint(w, cell)
				}
			}
			fmt.Fprintln(w)
		}
	}
}

// renderActions prints the action bar. Enabled actions are shown in square
// brackets, disabled ones in parentheses.
func renderActions(w io.Writer, b *book.Book) {
	fmt.Fprintf(w, "[%s]  ", b.SelectAllLabel())
	if b.CanDownload() {
		fmt.Fprintf(w, "[%s]\n", b.DownloadLabel())
	} else {
		mutedColor.Fprintf(w, "(%s)\n", b.DownloadLabel())
	}
}

func marker(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

func cardLine(s string) string {
	return "| " + pad(fit(s, cardWidth-4), cardWidth-4) + " |"
}

// fit truncates s to n runes, marking the cut with "~".
func fit(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "~"
}

func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
