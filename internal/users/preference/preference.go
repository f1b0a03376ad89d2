// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package preference manages the taste profile a user builds during onboarding.

The profile is assembled step by step: each questionnaire step posts a
[Patch] that is merged into the stored [Profile]. Fields the patch leaves out
are never lost. The matching engine only ever sees immutable Profile values.

Core Responsibility:

  - Entities: Profile, Patch, onboarding Step flags.
  - Persistence: users.tasteprofile via PostgreSQL.
  - Resilience: profile reads on the browse path go through a circuit breaker.
*/
package preference

import (
	"context"
	"time"

	"github.com/taibuivan/sommelier/internal/core/vocab"
	"github.com/taibuivan/sommelier/pkg/slug"
)

// # Onboarding Steps

// Step is a bit flag recording which onboarding steps the user completed.
type Step uint8

const (
	StepTaste Step = 1 << iota
	StepTraits
	StepWineTypes
)

var stepLabels = map[string]Step{
	"taste":      StepTaste,
	"traits":     StepTraits,
	"wine_types": StepWineTypes,
}

// noPreference clears an ordinal axis or the price bucket when sent explicitly.
const noPreference = "no_preference"

// # Domain Entities

// Profile is a user's taste profile.
//
// Unset axes mean "no preference" and are skipped by the scorer. An empty
// WineTypes set and [vocab.PriceAny] apply no hard filter.
type Profile struct {
	UserID      string            `json:"user_id"`
	Sweetness   vocab.Sweetness   `json:"sweetness"`
	Body        vocab.Body        `json:"body"`
	Acidity     vocab.Acidity     `json:"acidity"`
	Tannin      vocab.Tannin      `json:"tannin"`
	PriceBucket vocab.PriceBucket `json:"price_bucket"`
	Traits      vocab.TraitSet    `json:"traits"`
	WineTypes   vocab.CategorySet `json:"wine_types"`
	Steps       Step              `json:"steps"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// IsEmpty reports whether the profile carries no preference at all.
func (profile Profile) IsEmpty() bool {
	return !profile.Sweetness.IsSet() && !profile.Body.IsSet() &&
		!profile.Acidity.IsSet() && !profile.Tannin.IsSet() &&
		!profile.PriceBucket.IsSet() && profile.Traits.IsEmpty() && profile.WineTypes.IsEmpty()
}

// Completed reports whether the given onboarding step was recorded.
func (profile Profile) Completed(step Step) bool {
	return profile.Steps&step != 0
}

// Patch is one questionnaire step. A nil field is "not provided".
//
// Values outside the vocabulary are also treated as not provided, so a bad
// label never wipes a field the user already set. "no_preference" clears an
// axis or the budget; an empty list clears traits or wine types.
type Patch struct {
	Sweetness   *string   `json:"sweetness"`
	Body        *string   `json:"body"`
	Acidity     *string   `json:"acidity"`
	Tannin      *string   `json:"tannin"`
	PriceBucket *string   `json:"price_bucket"`
	Traits      *[]string `json:"traits"`
	WineTypes   *[]string `json:"wine_types"`
	Step        *string   `json:"step"`
}

// IsEmpty reports whether the patch provides no field at all.
func (patch Patch) IsEmpty() bool {
	return patch.Sweetness == nil && patch.Body == nil && patch.Acidity == nil &&
		patch.Tannin == nil && patch.PriceBucket == nil && patch.Traits == nil &&
		patch.WineTypes == nil && patch.Step == nil
}

/*
Apply merges patch into a copy of profile and returns the copy.

Parameters:
  - patch: Patch (one questionnaire step)

Returns:
  - Profile: The merged profile; the receiver is never modified
*/
func (profile Profile) Apply(patch Patch) Profile {
	merged := profile

	mergeAxis(patch.Sweetness, &merged.Sweetness, vocab.ParseSweetness)
	mergeAxis(patch.Body, &merged.Body, vocab.ParseBody)
	mergeAxis(patch.Acidity, &merged.Acidity, vocab.ParseAcidity)
	mergeAxis(patch.Tannin, &merged.Tannin, vocab.ParseTannin)

	if patch.PriceBucket != nil {
		switch token := slug.Token(*patch.PriceBucket); token {
		case noPreference, "any":
			merged.PriceBucket = vocab.PriceAny
		default:
			if bucket := vocab.ParsePriceBucket(token); bucket.IsSet() {
				merged.PriceBucket = bucket
			}
		}
	}

	if patch.Traits != nil {
		if traits, ok := vocab.ParseTraitSet(*patch.Traits); ok {
			merged.Traits = traits
		}
	}

	if patch.WineTypes != nil {
		if types, ok := vocab.ParseCategorySet(*patch.WineTypes); ok {
			merged.WineTypes = types
		}
	}

	if patch.Step != nil {
		merged.Steps |= stepLabels[slug.Token(*patch.Step)]
	}

	return merged
}

// mergeAxis applies one ordinal field of a patch.
func mergeAxis[T interface{ IsSet() bool }](raw *string, target *T, parse func(string) T) {
	if raw == nil {
		return
	}
	if slug.Token(*raw) == noPreference {
		var unset T
		*target = unset
		return
	}
	if value := parse(*raw); value.IsSet() {
		*target = value
	}
}

// # Repository Contracts

// Repository defines the persistence contract for taste profiles.
type Repository interface {
	/*
		FindByUserID retrieves the taste profile of a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Profile: Hydrated profile
		  - error: apperr.NotFound if the user has not started onboarding
	*/
	FindByUserID(context context.Context, userID string) (*Profile, error)

	/*
		Upsert saves the full profile, replacing any stored version.

		Parameters:
		  - context: context.Context
		  - profile: *Profile

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, profile *Profile) error
}
