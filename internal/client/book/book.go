package book

import (
	"sync"

	"github.com/dmitrijs2005/resumebook/internal/client/models"
)

// NarrowWidth is the layout width, in pixels, below which action labels
// collapse into icons. The console converts terminal columns to pixels
// before calling SetWidth.
const NarrowWidth = 550

// Action labels and their narrow-layout icons.
const (
	LabelSelectAll   = "Select All"
	LabelDeselectAll = "Deselect All"
	LabelDownload    = "Download"

	IconSelectAll   = "☐"
	IconDeselectAll = "☑"
	IconDownload    = "⤓"
)

// Book holds the view state. It is safe for concurrent use.
type Book struct {
	mu sync.Mutex

	order   []string
	byID    map[string]models.Resume
	filter  models.Filter
	visible []models.Resume

	selected []string
	selIndex map[string]struct{}

	view  models.ViewMode
	width int
}

// New returns an empty book in list view with the given initial width.
func New(width int) *Book {
	return &Book{
		byID:     make(map[string]models.Resume),
		selIndex: make(map[string]struct{}),
		view:     models.ViewList,
		width:    width,
	}
}

// Merge adds fetched résumés to the full set. Records are keyed by ID: a
// known ID keeps its position and takes the newer value, a new ID is
// appended. The full set is never cleared here.
func (b *Book) Merge(rs []models.Resume) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range rs {
		if _, ok := b.byID[r.ID]; !ok {
			b.order = append(b.order, r.ID)
		}
		b.byID[r.ID] = r
	}
	b.recompute()
}

// All returns the full set in merge order.
func (b *Book) All() []models.Resume {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.all()
}

func (b *Book) all() []models.Resume {
	out := make([]models.Resume, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.byID[id])
	}
	return out
}

// Get returns the résumé with the given ID from the full set.
func (b *Book) Get(id string) (models.Resume, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.byID[id]
	return r, ok
}

// Filtered returns the currently visible résumés.
func (b *Book) Filtered() []models.Resume {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]models.Resume(nil), b.visible...)
}

func (b *Book) Filter() models.Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// SetGraduationYear sets the year filter; "" clears it.
func (b *Book) SetGraduationYear(y string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.GraduationYear = y
	b.recompute()
}

// SetMajor sets the major filter; "" clears it.
func (b *Book) SetMajor(m string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter.Major = m
	b.recompute()
}

func (b *Book) ClearFilter() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filter = models.Filter{}
	b.recompute()
}

func (b *Book) recompute() {
	b.visible = Apply(b.all(), b.filter)
}

// Toggle flips the selection of id. IDs are not checked against the full
// set, and the selection keeps the order in which IDs were added.
func (b *Book) Toggle(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.selIndex[id]; ok {
		delete(b.selIndex, id)
		for i, s := range b.selected {
			if s == id {
				b.selected = append(b.selected[:i:i], b.selected[i+1:]...)
				break
			}
		}
		return
	}
	b.selIndex[id] = struct{}{}
	b.selected = append(b.selected, id)
}

// ToggleAll clears the selection when its size equals the size of the
// filtered set, and otherwise replaces it with the filtered IDs.
//
// Only sizes are compared: a selection of N hidden IDs next to N visible
// résumés counts as "all selected".
func (b *Book) ToggleAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.allSelected() {
		b.clearSelection()
		return
	}

	b.clearSelection()
	for _, r := range b.visible {
		if _, ok := b.selIndex[r.ID]; ok {
			continue
		}
		b.selIndex[r.ID] = struct{}{}
		b.selected = append(b.selected, r.ID)
	}
}

func (b *Book) clearSelection() {
	b.selected = nil
	b.selIndex = make(map[string]struct{})
}

// AllSelected reports the state ToggleAll acts on.
func (b *Book) AllSelected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.allSelected()
}

func (b *Book) allSelected() bool {
	return len(b.selected) == len(b.visible)
}

// Selected returns the selected IDs in selection order.
func (b *Book) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.selected...)
}

func (b *Book) IsSelected(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.selIndex[id]
	return ok
}

func (b *Book) SelectionSize() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.selected)
}

// CanDownload reports whether the download action is enabled.
func (b *Book) CanDownload() bool {
	return b.SelectionSize() > 0
}

// ToggleView switches between list and grid presentation.
func (b *Book) ToggleView() models.ViewMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.view == models.ViewGrid {
		b.view = models.ViewList
	} else {
		b.view = models.ViewGrid
	}
	return b.view
}

func (b *Book) View() models.ViewMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// SetWidth records the current layout width and reports whether the
// narrow flag changed.
func (b *Book) SetWidth(w int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	was := b.width < NarrowWidth
	b.width = w
	return was != (w < NarrowWidth)
}

func (b *Book) Width() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width
}

func (b *Book) Narrow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width < NarrowWidth
}

// SelectAllLabel is the caption of the select-all control.
func (b *Book) SelectAllLabel() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	narrow := b.width < NarrowWidth
	switch {
	case b.allSelected() && narrow:
		return IconDeselectAll
	case b.allSelected():
		return LabelDeselectAll
	case narrow:
		return IconSelectAll
	default:
		return LabelSelectAll
	}
}

// DownloadLabel is the caption of the download control.
func (b *Book) DownloadLabel() string {
	if b.Narrow() {
		return IconDownload
	}
	return LabelDownload
}

// Reset drops every résumé, the filter and the selection. View mode and
// width survive.
func (b *Book) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = nil
	b.byID = make(map[string]models.Resume)
	b.filter = models.Filter{}
	b.visible = nil
	b.clearSelection()
}
