// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package wine

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/platform/database/schema"
	"github.com/taibuivan/sommelier/internal/platform/dberr"
	"github.com/taibuivan/sommelier/pkg/pointer"
)

// PostgresRepository reads catalog.wine with a single full scan.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a catalog reader over the shared pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// LoadAll scans every non-deleted wine ordered by id.
func (repository *PostgresRepository) LoadAll(context context.Context) ([]Wine, error) {
	table := schema.CatalogWine
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s IS NULL
		ORDER BY %s ASC
	`, strings.Join(table.Columns(), ", "), table.Table, table.DeletedAt, table.ID)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Catalog", "load_wines")
	}

	wines, err := pgx.CollectRows(rows, scanWine)
	if err != nil {
		return nil, dberr.Wrap(err, "Catalog", "scan_wines")
	}
	return wines, nil
}

// scanWine maps one catalog row. Enum columns are free text in the table and
// are normalised through the vocabulary parsers.
func scanWine(row pgx.CollectableRow) (Wine, error) {
	var (
		record                           Wine
		category                         string
		sweetness, body, acidity, tannin *string
		traits                           []string
	)

	err := row.Scan(
		&record.ID, &record.Name, &record.Winery, &category, &record.Price, &record.Rating,
		&record.Region, &record.Vintage, &sweetness, &body, &acidity, &tannin,
		&traits, &record.FoodPairings,
	)
	if err != nil {
		return Wine{}, err
	}

	record.Category = vocab.ParseCategory(category)
	record.Sweetness = vocab.ParseSweetness(pointer.Val(sweetness))
	record.Body = vocab.ParseBody(pointer.Val(body))
	record.Acidity = vocab.ParseAcidity(pointer.Val(acidity))
	record.Tannin = vocab.ParseTannin(pointer.Val(tannin))

	// Keep what did not parse so the snapshot rejects the row instead of
	// serving a different taste profile than the one stored
	record.flagUnknown("sweetness", sweetness, record.Sweetness.IsSet())
	record.flagUnknown("body", body, record.Body.IsSet())
	record.flagUnknown("acidity", acidity, record.Acidity.IsSet())
	record.flagUnknown("tannin", tannin, record.Tannin.IsSet())

	var unknownTraits []string
	record.Traits, unknownTraits = vocab.TraitSetOf(traits)
	for _, label := range unknownTraits {
		record.Unrecognized = append(record.Unrecognized, UnknownLabel{Field: "traits", Label: label})
	}

	return record, nil
}

// flagUnknown records raw when the column held a value that did not parse.
// NULL and blank columns mean "unset" and are fine.
func (w *Wine) flagUnknown(field string, raw *string, parsed bool) {
	if parsed || strings.TrimSpace(pointer.Val(raw)) == "" {
		return
	}
	w.Unrecognized = append(w.Unrecognized, UnknownLabel{Field: field, Label: *raw})
}
