package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatQuoteNumber constructs the quote number string from components.
func formatQuoteNumber(year int, sequence int) string {
	return fmt.Sprintf("QT-%d-%04d", year, sequence)
}

// GenerateQuoteNumber creates the next quote number for a variant's quote
// export. Format: QT-{year}-{sequence}, sequence zero-padded to 4 digits and
// counted per calendar year across all variants.
func GenerateQuoteNumber(app *pocketbase.PocketBase, now time.Time) string {
	year := now.Year()
	prefix := fmt.Sprintf("QT-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"quotes",
		"number ~ {:prefix}",
		"", 0, 0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection may not have any rows yet; start at 1.
		existing = nil
	}

	return formatQuoteNumber(year, len(existing)+1)
}
