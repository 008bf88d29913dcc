package seatmap

import (
	"strconv"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// DefaultSeatColor is shown for seats without a category.
const DefaultSeatColor = "323232"

// VisualMap is the derived layout shown to the editor.  RowOptions lists
// the visual labels that can be used with SelectRange and ColumnOptions
// the full 1..maxColumn range.
type VisualMap struct {
	Rows          []VisualRow `json:"rows"`
	RowOptions    []string    `json:"row_options"`
	ColumnOptions []int       `json:"column_options"`
}

// VisualRow is one rendered row.  An aisle row has no label and no slots;
// it stands in for a physical row whose seats were all removed.
type VisualRow struct {
	Label       string  `json:"label"`
	PhysicalRow string  `json:"physical_row"`
	Aisle       bool    `json:"aisle"`
	Slots       []*Slot `json:"slots"`
}

// Slot is a seat position in a visual row.  A nil *Slot is a gap.
type Slot struct {
	RowChar        string  `json:"row_char"`
	SeatNumber     int     `json:"seat_number"`
	RealSeatNumber int     `json:"real_seat_number"`
	DisplayText    string  `json:"display_text"`
	CategoryID     *uint64 `json:"category_id"`
	Color          string  `json:"color"`
	Selected       bool    `json:"selected"`
}

// BuildVisualMap recomputes the visual layout from the session's seats
// and clears the selection.  It is deterministic: the same seats always
// produce the same map.
func BuildVisualMap(s Session) Session {
	out := s.clone()
	out.Selected = []SeatKey{}
	out.Map = render(out.Seats)
	return out
}

func render(seats []model.Seat) VisualMap {
	vm := VisualMap{Rows: []VisualRow{}, RowOptions: []string{}, ColumnOptions: []int{}}
	if len(seats) == 0 {
		return vm
	}

	maxRow := ""
	maxCol := 0
	byRow := make(map[string][]model.Seat)
	for _, seat := range seats {
		if _, ok := RowIndex(seat.RowChar); !ok {
			continue
		}
		if maxRow == "" || higherRow(seat.RowChar, maxRow) {
			maxRow = seat.RowChar
		}
		if seat.SeatNumber > maxCol {
			maxCol = seat.SeatNumber
		}
		byRow[seat.RowChar] = append(byRow[seat.RowChar], seat)
	}
	if maxRow == "" {
		return vm
	}
	maxIdx, _ := RowIndex(maxRow)

	visual := 0
	for i := 0; i <= maxIdx; i++ {
		physical := IndexToRow(i)
		inRow := byRow[physical]
		if len(inRow) == 0 {
			vm.Rows = append(vm.Rows, VisualRow{PhysicalRow: physical, Aisle: true, Slots: []*Slot{}})
			continue
		}
		label := IndexToRow(visual)
		visual++

		byCol := make(map[int]model.Seat, len(inRow))
		for _, seat := range inRow {
			if _, dup := byCol[seat.SeatNumber]; !dup {
				byCol[seat.SeatNumber] = seat
			}
		}
		row := VisualRow{Label: label, PhysicalRow: physical, Slots: make([]*Slot, 0, maxCol)}
		for c := 1; c <= maxCol; c++ {
			seat, ok := byCol[c]
			if !ok {
				row.Slots = append(row.Slots, nil)
				continue
			}
			row.Slots = append(row.Slots, slotFor(seat, label))
		}
		vm.Rows = append(vm.Rows, row)
		vm.RowOptions = append(vm.RowOptions, label)
	}
	for c := 1; c <= maxCol; c++ {
		vm.ColumnOptions = append(vm.ColumnOptions, c)
	}
	return vm
}

func slotFor(seat model.Seat, label string) *Slot {
	color := DefaultSeatColor
	if seat.Category != nil && seat.Category.ColorClass != "" {
		color = strings.ToUpper(strings.TrimPrefix(seat.Category.ColorClass, "#"))
	}
	return &Slot{
		RowChar:        seat.RowChar,
		SeatNumber:     seat.SeatNumber,
		RealSeatNumber: seat.RealSeatNumber,
		DisplayText:    label + strconv.Itoa(seat.RealSeatNumber),
		CategoryID:     seat.CategoryID,
		Color:          color,
	}
}

// markSelection refreshes the Selected flag of every slot from the
// session's selection.  The map is rebuilt slot by slot so that maps
// shared with an earlier session are left alone.
func markSelection(s Session) Session {
	set := s.selectedSet()
	rows := make([]VisualRow, len(s.Map.Rows))
	for i, row := range s.Map.Rows {
		r := row
		r.Slots = make([]*Slot, len(row.Slots))
		for j, slot := range row.Slots {
			if slot == nil {
				continue
			}
			cp := *slot
			_, cp.Selected = set[SeatKey{Row: slot.RowChar, Number: slot.SeatNumber}]
			r.Slots[j] = &cp
		}
		rows[i] = r
	}
	s.Map.Rows = rows
	return s
}

// visualRow resolves a visual label back to its rendered row.
func (vm VisualMap) visualRow(label string) (VisualRow, bool) {
	label = NormalizeRow(label)
	if label == "" {
		return VisualRow{}, false
	}
	for _, row := range vm.Rows {
		if !row.Aisle && row.Label == label {
			return row, true
		}
	}
	return VisualRow{}, false
}
