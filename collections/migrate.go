package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
)

// MigrateVariantDefaults backfills variants created before the status field
// was required, and contracts saved without a duration. Safe to call on
// every startup -- returns early if nothing to migrate.
func MigrateVariantDefaults(app *pocketbase.PocketBase) error {
	variantsCol, err := app.FindCollectionByNameOrId("variants")
	if err != nil {
		return fmt.Errorf("migrate: could not find variants collection: %w", err)
	}

	statusless, err := app.FindRecordsByFilter(
		variantsCol,
		"status = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query variants without status: %w", err)
	}

	for _, variant := range statusless {
		variant.Set("status", "draft")
		if err := app.Save(variant); err != nil {
			log.Printf("migrate: failed to backfill status on variant %s: %v\n", variant.Id, err)
			continue
		}
	}
	if len(statusless) > 0 {
		log.Printf("migrate: backfilled status on %d variant(s)\n", len(statusless))
	}

	contractsCol, err := app.FindCollectionByNameOrId("contracts")
	if err != nil {
		return fmt.Errorf("migrate: could not find contracts collection: %w", err)
	}

	durationless, err := app.FindRecordsByFilter(
		contractsCol,
		"duration_months = 0",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query contracts without duration: %w", err)
	}

	for _, contract := range durationless {
		contract.Set("duration_months", 12)
		if err := app.Save(contract); err != nil {
			log.Printf("migrate: failed to backfill duration on contract %s: %v\n", contract.Id, err)
			continue
		}
	}
	if len(durationless) > 0 {
		log.Printf("migrate: backfilled duration on %d contract(s)\n", len(durationless))
	}

	return nil
}
