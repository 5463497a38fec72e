package utils

import (
	"encoding/csv"
	"io"
)

func WriteCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}
