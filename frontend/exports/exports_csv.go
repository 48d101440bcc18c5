package exports

import (
	"encoding/csv"
	"io"
	"strconv"

	"portfolio/models"
)

// cell keeps spreadsheet apps from reading visitor input as a formula.
func cell(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

func writeMessagesCSV(w io.Writer, messages []models.ContactMessage) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"id", "date", "name", "email", "read", "message"}); err != nil {
		return err
	}
	for _, m := range messages {
		record := []string{
			cell(m.ID.String()),
			cell(m.Date),
			cell(m.Name),
			cell(m.Email),
			strconv.FormatBool(m.Read),
			cell(m.Message),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
