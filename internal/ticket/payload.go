package ticket

import "strings"

// ScanRequest is the body posted by scanners.  Different scanner apps
// send the code under different names.
type ScanRequest struct {
	Code            string `json:"code"`
	Barcode         string `json:"barcode"`
	TicketCode      string `json:"ticketCode"`
	TicketCodeSnake string `json:"ticket_code"`
}

// Extractor reads one candidate field of a ScanRequest.
type Extractor struct {
	Field string
	Get   func(ScanRequest) string
}

// Extractors lists the code fields in priority order.
var Extractors = []Extractor{
	{Field: "code", Get: func(r ScanRequest) string { return r.Code }},
	{Field: "barcode", Get: func(r ScanRequest) string { return r.Barcode }},
	{Field: "ticketCode", Get: func(r ScanRequest) string { return r.TicketCode }},
	{Field: "ticket_code", Get: func(r ScanRequest) string { return r.TicketCodeSnake }},
}

// ResolveCode returns the first non-blank code in priority order along
// with the name of the field it came from.
func ResolveCode(r ScanRequest) (code, field string, err error) {
	for _, ex := range Extractors {
		if v := strings.TrimSpace(ex.Get(r)); v != "" {
			return v, ex.Field, nil
		}
	}
	return "", "", reject(KindMissingCode, "", "No ticket code provided in payload.")
}
