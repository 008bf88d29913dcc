// Package booking filters the box office's booking list.
package booking

import (
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/stagex-boxoffice/internal/model"
)

// Stored booking status labels.
const (
	LabelProcessing = "Đang xử lý"
	LabelCompleted  = "Đã hoàn thành"
	LabelSucceeded  = "Thành công"
	LabelPaidPOS    = "Đã thanh toán POS"
	LabelCancelled  = "Đã hủy"
)

// StatusGroup selects bookings by status.  The zero value matches all.
type StatusGroup string

const (
	StatusAll        StatusGroup = ""
	StatusProcessing StatusGroup = "processing"
	StatusCompleted  StatusGroup = "completed"
	StatusCancelled  StatusGroup = "cancelled"
)

// ParseStatusGroup accepts the group names above, ignoring case.  "all"
// and the empty string both mean StatusAll.
func ParseStatusGroup(s string) (StatusGroup, bool) {
	switch g := StatusGroup(strings.ToLower(strings.TrimSpace(s))); g {
	case StatusAll, StatusProcessing, StatusCompleted, StatusCancelled:
		return g, true
	case "all":
		return StatusAll, true
	}
	return StatusAll, false
}

// Matches reports whether a stored status label belongs to the group.
// Completed covers every label a paid booking can end up with.
func (g StatusGroup) Matches(label string) bool {
	switch g {
	case StatusAll:
		return true
	case StatusProcessing:
		return label == LabelProcessing
	case StatusCompleted:
		return label == LabelCompleted || label == LabelSucceeded || label == LabelPaidPOS
	case StatusCancelled:
		return label == LabelCancelled
	}
	return false
}

// Filter narrows a booking list.
//
// Keyword matches, ignoring case, a substring of the booking id, the
// customer name, the creator name or the show title.  Date, when set,
// keeps bookings created on that calendar day.
type Filter struct {
	Keyword string
	Status  StatusGroup
	Date    *time.Time
}

// Apply returns the bookings that pass f, keeping their order.
func (f Filter) Apply(list []model.Booking) []model.Booking {
	k := strings.ToLower(strings.TrimSpace(f.Keyword))
	out := make([]model.Booking, 0, len(list))
	for _, b := range list {
		if k != "" && !matchesKeyword(b, k) {
			continue
		}
		if !f.Status.Matches(b.Status) {
			continue
		}
		if f.Date != nil && !sameDay(b.CreatedAt, *f.Date) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func matchesKeyword(b model.Booking, k string) bool {
	return strings.Contains(strconv.FormatUint(b.ID, 10), k) ||
		strings.Contains(strings.ToLower(b.CustomerName), k) ||
		strings.Contains(strings.ToLower(b.CreatorName), k) ||
		strings.Contains(strings.ToLower(b.ShowTitle), k)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// CreatorName is the name shown as the booking's creator: "Online" for a
// customer's own order, else the selling staff member, else "-".
func CreatorName(hasCustomer bool, staffName string) string {
	switch {
	case hasCustomer:
		return "Online"
	case staffName != "":
		return staffName
	}
	return "-"
}

// SeatLabel joins a row letter and seat number, e.g. "B7".
func SeatLabel(row string, number int) string {
	return row + strconv.Itoa(number)
}
