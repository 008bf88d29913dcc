package ticket

// Status is the closed set of ticket states understood by the scanner.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusValid
	StatusUsed
	StatusCancelled
)

// Stored labels of the tickets.status column.
const (
	LabelPending   = "Đang chờ"
	LabelValid     = "Hợp lệ"
	LabelUsed      = "Đã sử dụng"
	LabelCancelled = "Đã hủy"
)

// ParseStatus maps a stored label onto its variant.  Unrecognised labels
// map to StatusUnknown.
func ParseStatus(label string) Status {
	switch label {
	case LabelPending:
		return StatusPending
	case LabelValid:
		return StatusValid
	case LabelUsed:
		return StatusUsed
	case LabelCancelled:
		return StatusCancelled
	default:
		return StatusUnknown
	}
}

// Label returns the stored label of s, or "" for StatusUnknown.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return LabelPending
	case StatusValid:
		return LabelValid
	case StatusUsed:
		return LabelUsed
	case StatusCancelled:
		return LabelCancelled
	default:
		return ""
	}
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusValid:
		return "valid"
	case StatusUsed:
		return "used"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}
