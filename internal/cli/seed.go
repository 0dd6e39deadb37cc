// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-natours/internal/crypto"
	"github.com/MKhiriev/go-natours/internal/logger"
	"github.com/MKhiriev/go-natours/internal/service"
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/internal/validators"
	"github.com/MKhiriev/go-natours/models"
	"github.com/spf13/cobra"
)

const purgeStatement = `TRUNCATE TABLE reviews, tours, users CASCADE`

// seeder creates the records of a seed file through the services so that
// the write pipelines (validation, hashing, slugs, ratings) run as they do
// for API requests.
type seeder struct {
	users   service.CRUDService[models.User]
	tours   service.CRUDService[models.Tour]
	reviews service.CRUDService[models.Review]
	logger  *logger.Logger
}

// seedResult counts the created records.
type seedResult struct {
	Users, Tours, Reviews int
}

func (s *seeder) seed(ctx context.Context, f *seedFile) (seedResult, error) {
	var res seedResult

	userIDs := make(map[string]string, len(f.Users))
	for i, u := range f.Users {
		created, err := s.users.Create(ctx, u.user())
		if err != nil {
			return res, fmt.Errorf("user #%d (%s): %w", i+1, u.Email, err)
		}
		userIDs[u.Email] = created.ID
		res.Users++
	}

	tourIDs := make(map[string]string, len(f.Tours))
	for i, t := range f.Tours {
		tour, err := t.tour(userIDs)
		if err != nil {
			return res, err
		}
		created, err := s.tours.Create(ctx, tour)
		if err != nil {
			return res, fmt.Errorf("tour #%d (%s): %w", i+1, t.Name, err)
		}
		tourIDs[t.Name] = created.ID
		res.Tours++
	}

	for i, r := range f.Reviews {
		review, err := r.review(tourIDs, userIDs)
		if err != nil {
			return res, err
		}
		if _, err = s.reviews.Create(ctx, review); err != nil {
			return res, fmt.Errorf("review #%d: %w", i+1, err)
		}
		res.Reviews++
	}

	s.logger.Info().
		Int("users", res.Users).
		Int("tours", res.Tours).
		Int("reviews", res.Reviews).
		Msg("seed data imported")

	return res, nil
}

func newSeeder(storages *store.Storages, passwordCost int, log *logger.Logger) *seeder {
	v := validators.NewModelValidator()
	hasher := crypto.NewPasswordHasher(passwordCost)

	return &seeder{
		users:   service.NewUserResource(storages.UserRepository, v, hasher, log),
		tours:   service.NewTourService(storages.TourRepository, v, log),
		reviews: service.NewReviewService(storages.ReviewRepository, storages.TourRepository, v, log),
		logger:  log,
	}
}

func newSeedCommand(opts *options) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import users, tours and reviews from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("error opening seed file: %w", err)
			}
			defer file.Close()

			data, err := readSeedFile(file)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := opts.connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			s := newSeeder(store.NewStorages(db, opts.logger), cfg.App.PasswordCost, opts.logger)
			res, err := s.seed(cmd.Context(), data)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d users, %d tours, %d reviews\n", res.Users, res.Tours, res.Reviews)
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "path of the YAML seed file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newPurgeCommand(opts *options) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete all users, tours and reviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !confirmed {
				return errPurgeNotConfirmed
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			db, err := opts.connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err = db.ExecContext(cmd.Context(), purgeStatement); err != nil {
				return fmt.Errorf("error purging data: %w", err)
			}

			opts.logger.Info().Msg("data purged")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	return cmd
}
