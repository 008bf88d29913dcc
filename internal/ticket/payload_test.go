package ticket

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCode  string
		wantField string
	}{
		{"code wins", `{"code":"1","barcode":"2","ticketCode":"3","ticket_code":"4"}`, "1", "code"},
		{"barcode second", `{"barcode":"2","ticketCode":"3","ticket_code":"4"}`, "2", "barcode"},
		{"camel third", `{"ticketCode":"3","ticket_code":"4"}`, "3", "ticketCode"},
		{"snake last", `{"ticket_code":"4"}`, "4", "ticket_code"},
		{"blank skipped", `{"code":"  ","barcode":" 12345 "}`, "12345", "barcode"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var req ScanRequest
			require.NoError(t, json.Unmarshal([]byte(tc.body), &req))
			code, field, err := ResolveCode(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantField, field)
		})
	}
}

func TestResolveCode_Missing(t *testing.T) {
	_, _, err := ResolveCode(ScanRequest{Code: " ", TicketCode: "\t"})
	assert.ErrorIs(t, err, ErrMissingCode)
}
