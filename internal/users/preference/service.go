// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/taibuivan/sommelier/internal/platform/apperr"
)

// # Service Layer

// BreakerSettings tunes the circuit breaker in front of the profile store.
type BreakerSettings struct {
	// Failures is the number of consecutive failures that opens the breaker.
	Failures uint32

	// Timeout is how long the breaker stays open before probing again.
	Timeout time.Duration
}

// Service reads and merges taste profiles.
//
// Every store call goes through one circuit breaker. While it is open, reads
// and writes fail fast with an Upstream-Unavailable error instead of piling
// requests onto a struggling database.
type Service struct {
	repository Repository
	breaker    *gobreaker.CircuitBreaker[*Profile]
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository, settings BreakerSettings, logger *slog.Logger) *Service {
	breaker := gobreaker.NewCircuitBreaker[*Profile](gobreaker.Settings{
		Name:        "taste_profile_store",
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.Failures
		},
		// A missing profile or an abandoned request says nothing about store health
		IsSuccessful: func(err error) bool {
			return err == nil || apperr.IsNotFound(err) ||
				errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit_breaker_state_changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &Service{
		repository: repository,
		breaker:    breaker,
		logger:     logger,
		now:        time.Now,
	}
}

/*
Get retrieves a user's taste profile.

Description: Users who have not started onboarding receive an empty profile
rather than a 404, so clients can always render the questionnaire state.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *Profile: The stored or empty profile
  - error: apperr.Unavailable when the store fails or the breaker is open
*/
func (service *Service) Get(context context.Context, userID string) (*Profile, error) {
	profile, err := service.find(context, userID)
	if apperr.IsNotFound(err) {
		return &Profile{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

/*
Lookup returns the profile used to personalise ranking.

Parameters:
  - context: context.Context
  - userID: string (empty for anonymous requests)

Returns:
  - *Profile: nil when the request is anonymous or the user has no preferences yet
  - error: apperr.Unavailable when the store fails or the breaker is open
*/
func (service *Service) Lookup(context context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, nil
	}

	profile, err := service.find(context, userID)
	if apperr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if profile.IsEmpty() {
		return nil, nil
	}
	return profile, nil
}

/*
Update merges one questionnaire step into the stored profile.

Parameters:
  - context: context.Context
  - userID: string
  - patch: Patch

Returns:
  - *Profile: The merged profile as persisted
  - error: Validation or storage failures
*/
func (service *Service) Update(context context.Context, userID string, patch Patch) (*Profile, error) {
	if patch.IsEmpty() {
		return nil, apperr.ValidationError("At least one preference field is required")
	}

	current, err := service.Get(context, userID)
	if err != nil {
		return nil, err
	}

	merged := current.Apply(patch)
	merged.UserID = userID
	merged.UpdatedAt = service.now().UTC()

	_, err = service.breaker.Execute(func() (*Profile, error) {
		return nil, service.repository.Upsert(context, &merged)
	})
	if err != nil {
		return nil, service.classify(err)
	}

	service.logger.Info("preferences_updated",
		slog.String("user_id", userID),
		slog.Int("steps", int(merged.Steps)),
		slog.Int("traits", merged.Traits.Len()),
		slog.Int("wine_types", merged.WineTypes.Len()),
	)

	return &merged, nil
}

func (service *Service) find(context context.Context, userID string) (*Profile, error) {
	profile, err := service.breaker.Execute(func() (*Profile, error) {
		return service.repository.FindByUserID(context, userID)
	})
	if err != nil {
		return nil, service.classify(err)
	}
	return profile, nil
}

// classify maps breaker rejections and raw store errors onto the app taxonomy.
func (service *Service) classify(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return apperr.Unavailable("Taste profile", err)
	}
	if apperr.IsAppError(err) {
		return err
	}
	return apperr.Unavailable("Taste profile", err)
}
