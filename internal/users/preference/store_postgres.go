// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/internal/platform/database/schema"
	"github.com/taibuivan/sommelier/internal/platform/dberr"
	"github.com/taibuivan/sommelier/pkg/pointer"
)

// PostgresRepository implements [Repository] on users.tasteprofile.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a profile store over the shared pool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindByUserID retrieves the stored taste profile for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: Hydrated profile
  - error: apperr.NotFound, apperr.Unavailable or internal failures
*/
func (repository *PostgresRepository) FindByUserID(context context.Context, userID string) (*Profile, error) {
	table := schema.UserTasteProfile
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		table.UserID, table.Sweetness, table.Body, table.Acidity, table.Tannin,
		table.PriceBucket, table.Traits, table.WineTypes, table.Steps, table.UpdatedAt,
		table.Table,
		table.UserID,
	)

	var (
		profile                                       Profile
		sweetness, body, acidity, tannin, priceBucket *string
		traits, wineTypes                             []string
		steps                                         int32
	)

	err := repository.pool.QueryRow(context, query, userID).Scan(
		&profile.UserID,
		&sweetness, &body, &acidity, &tannin, &priceBucket,
		&traits, &wineTypes,
		&steps,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Taste profile", "find_taste_profile")
	}

	profile.Sweetness = vocab.ParseSweetness(pointer.Val(sweetness))
	profile.Body = vocab.ParseBody(pointer.Val(body))
	profile.Acidity = vocab.ParseAcidity(pointer.Val(acidity))
	profile.Tannin = vocab.ParseTannin(pointer.Val(tannin))
	profile.PriceBucket = vocab.ParsePriceBucket(pointer.Val(priceBucket))
	profile.Traits, _ = vocab.TraitSetOf(traits)
	profile.WineTypes = categorySetOf(wineTypes)
	profile.Steps = Step(steps)

	return &profile, nil
}

/*
Upsert saves a user's profile using an ON CONFLICT UPDATE strategy.

Parameters:
  - context: context.Context
  - profile: *Profile

Returns:
  - error: apperr.Unavailable or internal failures
*/
func (repository *PostgresRepository) Upsert(context context.Context, profile *Profile) error {
	table := schema.UserTasteProfile
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s`,
		table.Table,
		table.UserID, table.Sweetness, table.Body, table.Acidity, table.Tannin,
		table.PriceBucket, table.Traits, table.WineTypes, table.Steps, table.UpdatedAt,
		table.UserID,
		table.Sweetness, table.Sweetness,
		table.Body, table.Body,
		table.Acidity, table.Acidity,
		table.Tannin, table.Tannin,
		table.PriceBucket, table.PriceBucket,
		table.Traits, table.Traits,
		table.WineTypes, table.WineTypes,
		table.Steps, table.Steps,
		table.UpdatedAt, table.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		profile.UserID,
		nullable(profile.Sweetness.String()),
		nullable(profile.Body.String()),
		nullable(profile.Acidity.String()),
		nullable(profile.Tannin.String()),
		nullable(profile.PriceBucket.String()),
		profile.Traits.Labels(),
		profile.WineTypes.Labels(),
		int32(profile.Steps),
		profile.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Taste profile", "upsert_taste_profile")
	}

	return nil
}

// nullable stores unset vocabulary values as SQL NULL.
func nullable(label string) *string {
	if label == "" {
		return nil
	}
	return pointer.To(label)
}

func categorySetOf(labels []string) vocab.CategorySet {
	var set vocab.CategorySet
	for _, label := range labels {
		set = set.With(vocab.ParseCategory(label))
	}
	return set
}
