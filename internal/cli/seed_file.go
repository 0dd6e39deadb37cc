// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-natours/models"
	"gopkg.in/yaml.v3"
)

// seedFile is the YAML document read by natoursctl seed. Tours name their
// guides by email, reviews name their tour by name and their author by
// email.
type seedFile struct {
	Users   []seedUser   `yaml:"users"`
	Tours   []seedTour   `yaml:"tours"`
	Reviews []seedReview `yaml:"reviews"`
}

type seedUser struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	Photo    string `yaml:"photo"`
}

type seedPoint struct {
	Coordinates []float64 `yaml:"coordinates"`
	Address     string    `yaml:"address"`
	Description string    `yaml:"description"`
	Day         int       `yaml:"day"`
}

type seedTour struct {
	Name          string      `yaml:"name"`
	Duration      int         `yaml:"duration"`
	MaxGroupSize  int         `yaml:"maxGroupSize"`
	Difficulty    string      `yaml:"difficulty"`
	Price         float64     `yaml:"price"`
	PriceDiscount *float64    `yaml:"priceDiscount"`
	Summary       string      `yaml:"summary"`
	Description   string      `yaml:"description"`
	ImageCover    string      `yaml:"imageCover"`
	Images        []string    `yaml:"images"`
	StartDates    []time.Time `yaml:"startDates"`
	SecretTour    bool        `yaml:"secretTour"`
	StartLocation seedPoint   `yaml:"startLocation"`
	Locations     []seedPoint `yaml:"locations"`
	Guides        []string    `yaml:"guides"`
}

type seedReview struct {
	Tour   string  `yaml:"tour"`
	User   string  `yaml:"user"`
	Rating float64 `yaml:"rating"`
	Review string  `yaml:"review"`
}

func readSeedFile(r io.Reader) (*seedFile, error) {
	var f seedFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	return &f, nil
}

// user returns the account to create. Seeded accounts confirm their own
// password.
func (u seedUser) user() *models.User {
	return &models.User{
		Name:            u.Name,
		Email:           u.Email,
		Photo:           u.Photo,
		Role:            models.Role(u.Role),
		Password:        u.Password,
		PasswordConfirm: u.Password,
	}
}

func (p seedPoint) point() models.Point {
	return models.Point{
		Type:        models.PointType,
		Coordinates: p.Coordinates,
		Address:     p.Address,
		Description: p.Description,
		Day:         p.Day,
	}
}

// tour converts t, resolving guide emails through userIDs.
func (t seedTour) tour(userIDs map[string]string) (*models.Tour, error) {
	guides := make(models.RefList[models.User], 0, len(t.Guides))
	for _, email := range t.Guides {
		id, ok := userIDs[email]
		if !ok {
			return nil, fmt.Errorf("tour %q: unknown guide %q", t.Name, email)
		}
		guides = append(guides, models.NewRef[models.User](id))
	}

	locations := make(models.Points, 0, len(t.Locations))
	for _, l := range t.Locations {
		locations = append(locations, l.point())
	}

	return &models.Tour{
		Name:          t.Name,
		Duration:      t.Duration,
		MaxGroupSize:  t.MaxGroupSize,
		Difficulty:    models.Difficulty(t.Difficulty),
		Price:         t.Price,
		PriceDiscount: t.PriceDiscount,
		Summary:       t.Summary,
		Description:   t.Description,
		ImageCover:    t.ImageCover,
		Images:        t.Images,
		StartDates:    t.StartDates,
		SecretTour:    t.SecretTour,
		StartLocation: t.StartLocation.point(),
		Locations:     locations,
		Guides:        guides,
	}, nil
}

// review converts r, resolving the tour name and the author email.
func (r seedReview) review(tourIDs, userIDs map[string]string) (*models.Review, error) {
	tourID, ok := tourIDs[r.Tour]
	if !ok {
		return nil, fmt.Errorf("review: unknown tour %q", r.Tour)
	}
	userID, ok := userIDs[r.User]
	if !ok {
		return nil, fmt.Errorf("review of %q: unknown user %q", r.Tour, r.User)
	}

	return &models.Review{
		Review: r.Review,
		Rating: r.Rating,
		Tour:   models.NewRef[models.Tour](tourID),
		User:   models.NewRef[models.User](userID),
	}, nil
}
