package utils

import (
	"bytes"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	err := WriteCSV(&buf, [][]string{
		{"id", "start", "staff"},
		{"1", "2025-11-06T08:00:00", "Anna Jensen, Bo Holm"},
	})
	if err != nil {
		t.Fatalf("WriteCSV returned error: %v", err)
	}

	want := "id,start,staff\n1,2025-11-06T08:00:00,\"Anna Jensen, Bo Holm\"\n"
	if buf.String() != want {
		t.Errorf("WriteCSV wrote %q, want %q", buf.String(), want)
	}
}
