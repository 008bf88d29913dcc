package seatmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// PreviewGrid replaces the session's seats with a rows x cols grid.  Rows
// are lettered from A and every seat's real number equals its column.
// rows may not exceed MaxRows nor cols MaxColumns.
func PreviewGrid(s Session, rows, cols int) (Session, error) {
	if s.ReadOnly {
		return s, ErrReadOnly
	}
	if rows <= 0 || cols <= 0 || rows > MaxRows || cols > MaxColumns {
		return s, ErrInvalidDimensions
	}
	out := s.clone()
	out.Seats = make([]model.Seat, 0, rows*cols)
	for r := 0; r < rows; r++ {
		row := IndexToRow(r)
		for c := 1; c <= cols; c++ {
			out.Seats = append(out.Seats, model.Seat{RowChar: row, SeatNumber: c, RealSeatNumber: c})
		}
	}
	return BuildVisualMap(out), nil
}

// ToggleSeat selects the seat at the given physical position, or
// deselects it when it is already selected.
func ToggleSeat(s Session, rowChar string, seatNumber int) (Session, error) {
	if s.ReadOnly {
		return s, ErrReadOnly
	}
	k := SeatKey{Row: NormalizeRow(rowChar), Number: seatNumber}
	if s.seatIndex(k) < 0 {
		return s, ErrSeatNotFound
	}
	out := s.clone()
	for i, sel := range out.Selected {
		if sel == k {
			out.Selected = append(out.Selected[:i], out.Selected[i+1:]...)
			return markSelection(out), nil
		}
	}
	out.Selected = append(out.Selected, k)
	return markSelection(out), nil
}

// SelectRange adds to the selection every seat of the given visual row
// whose physical seat number lies in [start, end].  A zero start means
// the first column and a zero end the last.  Seats already selected are
// not counted again.
func SelectRange(s Session, visualLabel string, start, end int) (Session, Report) {
	vm := render(s.Seats)
	row, ok := vm.visualRow(visualLabel)
	if !ok {
		return s, Report{}
	}
	if start <= 0 {
		start = 1
	}
	if end <= 0 {
		end = len(vm.ColumnOptions)
	}

	out := s.clone()
	set := out.selectedSet()
	count := 0
	for _, slot := range row.Slots {
		if slot == nil || slot.SeatNumber < start || slot.SeatNumber > end {
			continue
		}
		k := SeatKey{Row: slot.RowChar, Number: slot.SeatNumber}
		if _, dup := set[k]; dup {
			continue
		}
		set[k] = struct{}{}
		out.Selected = append(out.Selected, k)
		count++
	}
	if count == 0 {
		return s, Report{}
	}
	return markSelection(out), Report{Count: count, Notice: fmt.Sprintf("selected %d seats", count)}
}

// RemoveSelectedSeats deletes the selected seats, renumbers the real
// seat numbers of every row to 1..N in physical order and rebuilds the
// map.  Without a selection nothing changes and a notice is reported.
func RemoveSelectedSeats(s Session) (Session, Report, error) {
	if s.ReadOnly {
		return s, Report{}, ErrReadOnly
	}
	if len(s.Selected) == 0 {
		return s, Report{Notice: NoticeNothingSelected}, nil
	}
	set := s.selectedSet()
	kept := make([]model.Seat, 0, len(s.Seats))
	for _, seat := range s.Seats {
		if _, drop := set[keyOf(seat)]; drop {
			continue
		}
		kept = append(kept, seat)
	}
	removed := len(s.Seats) - len(kept)
	renumber(kept)

	out := s.clone()
	out.Seats = kept
	return BuildVisualMap(out), Report{Count: removed, Notice: fmt.Sprintf("removed %d seats", removed)}, nil
}

// renumber assigns RealSeatNumber 1..N within each row, ordered by
// SeatNumber.  The slice order itself is preserved.
func renumber(seats []model.Seat) {
	byRow := make(map[string][]int)
	for i, seat := range seats {
		byRow[seat.RowChar] = append(byRow[seat.RowChar], i)
	}
	for _, idx := range byRow {
		sort.SliceStable(idx, func(a, b int) bool { return seats[idx[a]].SeatNumber < seats[idx[b]].SeatNumber })
		for n, i := range idx {
			seats[i].RealSeatNumber = n + 1
		}
	}
}

// ApplyCategory assigns the category to every selected seat and clears
// the selection.  Nothing is persisted.
func ApplyCategory(s Session, cat model.SeatCategory) (Session, Report, error) {
	if s.ReadOnly {
		return s, Report{}, ErrReadOnly
	}
	if cat.ID == 0 {
		return s, Report{}, ErrInvalidCategory
	}
	if len(s.Selected) == 0 {
		return s, Report{Notice: NoticeNothingSelected}, nil
	}
	out := s.clone()
	set := out.selectedSet()
	ref := cat
	count := 0
	for i := range out.Seats {
		if _, ok := set[keyOf(out.Seats[i])]; !ok {
			continue
		}
		id := cat.ID
		out.Seats[i].CategoryID = &id
		out.Seats[i].Category = &ref
		count++
	}
	return BuildVisualMap(out), Report{Count: count, Notice: fmt.Sprintf("assigned %s to %d seats", cat.Name, count)}, nil
}

// RebindCategories refreshes every seat's category reference from the
// given list.  A seat whose category no longer exists keeps its id and
// loses the reference.  The selection is preserved.
func RebindCategories(s Session, cats []model.SeatCategory) Session {
	byID := make(map[uint64]model.SeatCategory, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	out := s.clone()
	for i := range out.Seats {
		seat := &out.Seats[i]
		if seat.CategoryID == nil {
			seat.Category = nil
			continue
		}
		if c, ok := byID[*seat.CategoryID]; ok {
			cp := c
			seat.Category = &cp
		} else {
			seat.Category = nil
		}
	}
	out.Map = render(out.Seats)
	return markSelection(out)
}

// ValidateForSave checks the session can be handed to the theater store
// and returns the trimmed theater name.
func ValidateForSave(s Session, name string) (string, error) {
	if s.ReadOnly {
		return "", ErrReadOnly
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	if len(s.Seats) == 0 {
		return "", ErrNoSeats
	}
	for _, seat := range s.Seats {
		if !seat.HasCategory() {
			return "", ErrMissingCategory
		}
	}
	return name, nil
}
