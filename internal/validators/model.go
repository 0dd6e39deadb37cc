// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-natours/models"
	"github.com/google/uuid"
)

// Field names used to restrict validation to a subset of fields. They match
// the JSON names of the models.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldRole            = "role"
	FieldPhoto           = "photo"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"

	FieldDuration       = "duration"
	FieldMaxGroupSize   = "maxGroupSize"
	FieldDifficulty     = "difficulty"
	FieldRatingsAverage = "ratingsAverage"
	FieldPrice          = "price"
	FieldPriceDiscount  = "priceDiscount"
	FieldSummary        = "summary"
	FieldImageCover     = "imageCover"
	FieldStartLocation  = "startLocation"
	FieldLocations      = "locations"
	FieldGuides         = "guides"

	FieldReview = "review"
	FieldRating = "rating"
	FieldTour   = "tour"
	FieldUser   = "user"

	FieldTitle = "title"
	FieldText  = "text"
	FieldPost  = "post"
)

const (
	PasswordMinLength = 8
	// PasswordMaxBytes is the longest password bcrypt accepts.
	PasswordMaxBytes  = 72
	TourNameMinLength = 10
	TourNameMaxLength = 40
)

var (
	userFields    = []string{FieldName, FieldEmail, FieldRole, FieldPassword, FieldPasswordConfirm}
	tourFields    = []string{FieldName, FieldDuration, FieldMaxGroupSize, FieldDifficulty, FieldRatingsAverage, FieldPrice, FieldPriceDiscount, FieldSummary, FieldImageCover, FieldStartLocation, FieldLocations, FieldGuides}
	reviewFields  = []string{FieldReview, FieldRating, FieldTour, FieldUser}
	postFields    = []string{FieldTitle, FieldUser}
	commentFields = []string{FieldText, FieldPost, FieldUser}
)

// ModelValidator implements [Validator] for every stored model: User, Tour,
// Review, Post and Comment. Both value and pointer forms are accepted.
type ModelValidator struct {
}

// NewModelValidator constructs a new ModelValidator and returns it as the
// Validator interface.
func NewModelValidator() Validator {
	return &ModelValidator{}
}

// Validate dispatches validation on the dynamic type of obj. It returns
// [ErrUnsupportedType] for unknown types, [ErrUnknownField] for a field name
// the model does not have and a [*Errors] listing every failed rule.
// Without field names the full rule set of the model is checked.
func (v *ModelValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.User:
		return v.validateUser(ctx, &value, fields...)
	case *models.User:
		return v.validateUser(ctx, value, fields...)

	case models.Tour:
		return v.validateTour(ctx, &value, fields...)
	case *models.Tour:
		return v.validateTour(ctx, value, fields...)

	case models.Review:
		return v.validateReview(ctx, &value, fields...)
	case *models.Review:
		return v.validateReview(ctx, value, fields...)

	case models.Post:
		return v.validatePost(ctx, &value, fields...)
	case *models.Post:
		return v.validatePost(ctx, value, fields...)

	case models.Comment:
		return v.validateComment(ctx, &value, fields...)
	case *models.Comment:
		return v.validateComment(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// IsEmail reports whether s is a bare "local@domain" address.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndex(s, "@")
	return at > 0 && strings.Contains(s[at+1:], ".")
}

func (v *ModelValidator) validateUser(_ context.Context, u *models.User, fields ...string) error {
	if len(fields) == 0 {
		fields = userFields
	}

	errs := &Errors{}
	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(u.Name) == "" {
				errs.Add(f, "Please tell us your name")
			}
		case FieldEmail:
			if u.Email == "" {
				errs.Add(f, "Please provide your email")
			} else if !IsEmail(u.Email) {
				errs.Add(f, "Please provide a valid email")
			}
		case FieldRole:
			if !u.Role.Valid() {
				errs.Add(f, "Role is either: user, guide, lead-guide, admin")
			}
		case FieldPhoto:
			if strings.ContainsAny(u.Photo, "/\\") {
				errs.Add(f, "Photo must be a file name")
			}
		case FieldPassword:
			if u.Password == "" {
				errs.Add(f, "Please provide a password")
			} else if utf8.RuneCountInString(u.Password) < PasswordMinLength {
				errs.Add(f, fmt.Sprintf("Password must have at least %d characters", PasswordMinLength))
			} else if len(u.Password) > PasswordMaxBytes {
				errs.Add(f, fmt.Sprintf("Password must have at most %d bytes", PasswordMaxBytes))
			}
		case FieldPasswordConfirm:
			if u.PasswordConfirm == "" {
				errs.Add(f, "Please confirm your password")
			} else if u.PasswordConfirm != u.Password {
				errs.Add(f, "Passwords are not the same!")
			}
		default:
			return fmt.Errorf("%w: user.%s", ErrUnknownField, f)
		}
	}

	return errs.Err()
}

func validPoint(p models.Point) bool {
	if p.Type != "" && p.Type != models.PointType {
		return false
	}
	if len(p.Coordinates) == 0 {
		return true
	}
	if len(p.Coordinates) != 2 {
		return false
	}
	lng, lat := p.Coordinates[0], p.Coordinates[1]
	return lng >= -180 && lng <= 180 && lat >= -90 && lat <= 90
}

func (v *ModelValidator) validateTour(_ context.Context, t *models.Tour, fields ...string) error {
	if len(fields) == 0 {
		fields = tourFields
	}

	errs := &Errors{}
	for _, f := range fields {
		switch f {
		case FieldName:
			n := utf8.RuneCountInString(strings.TrimSpace(t.Name))
			switch {
			case n == 0:
				errs.Add(f, "A tour must have a name")
			case n > TourNameMaxLength:
				errs.Add(f, fmt.Sprintf("A tour name must have less or equal than %d characters", TourNameMaxLength))
			case n < TourNameMinLength:
				errs.Add(f, fmt.Sprintf("A tour name must have more or equal than %d characters", TourNameMinLength))
			}
		case FieldDuration:
			if t.Duration <= 0 {
				errs.Add(f, "A tour must have a duration")
			}
		case FieldMaxGroupSize:
			if t.MaxGroupSize <= 0 {
				errs.Add(f, "A tour must have a group size")
			}
		case FieldDifficulty:
			if !t.Difficulty.Valid() {
				errs.Add(f, "Difficulty is either: easy, medium, difficult")
			}
		case FieldRatingsAverage:
			if t.RatingsAverage < 1 {
				errs.Add(f, "Rating must be above 1.0")
			} else if t.RatingsAverage > 5 {
				errs.Add(f, "Rating must be below 5.0")
			}
		case FieldPrice:
			if t.Price <= 0 {
				errs.Add(f, "A tour must have a price")
			}
		case FieldPriceDiscount:
			if t.PriceDiscount != nil && *t.PriceDiscount >= t.Price {
				errs.Add(f, fmt.Sprintf("Discount price(%g) should be below regular price", *t.PriceDiscount))
			}
		case FieldSummary:
			if strings.TrimSpace(t.Summary) == "" {
				errs.Add(f, "A tour must have a description")
			}
		case FieldImageCover:
			if strings.TrimSpace(t.ImageCover) == "" {
				errs.Add(f, "A tour must have a cover image")
			}
		case FieldStartLocation:
			if !validPoint(t.StartLocation) {
				errs.Add(f, "Start location must be a Point with [lng, lat] coordinates")
			}
		case FieldLocations:
			for i, p := range t.Locations {
				if !validPoint(p) {
					errs.Add(f, fmt.Sprintf("Location %d must be a Point with [lng, lat] coordinates", i))
				}
			}
		case FieldGuides:
			for _, id := range t.Guides.IDs() {
				if uuid.Validate(id) != nil {
					errs.Add(f, fmt.Sprintf("Invalid guide id: %s", id))
				}
			}
		default:
			return fmt.Errorf("%w: tour.%s", ErrUnknownField, f)
		}
	}

	return errs.Err()
}

func requireRef(errs *Errors, field, id, message string) {
	if id == "" {
		errs.Add(field, message)
		return
	}
	if uuid.Validate(id) != nil {
		errs.Add(field, fmt.Sprintf("Invalid %s id: %s", field, id))
	}
}

func (v *ModelValidator) validateReview(_ context.Context, r *models.Review, fields ...string) error {
	if len(fields) == 0 {
		fields = reviewFields
	}

	errs := &Errors{}
	for _, f := range fields {
		switch f {
		case FieldReview:
			if strings.TrimSpace(r.Review) == "" {
				errs.Add(f, "Review can not be empty")
			}
		case FieldRating:
			if r.Rating < 1 || r.Rating > 5 {
				errs.Add(f, "Rating must be between 1 and 5")
			}
		case FieldTour:
			requireRef(errs, f, r.Tour.ID, "Review must belong to a tour.")
		case FieldUser:
			requireRef(errs, f, r.User.ID, "Review must belong to a user.")
		default:
			return fmt.Errorf("%w: review.%s", ErrUnknownField, f)
		}
	}

	return errs.Err()
}

func (v *ModelValidator) validatePost(_ context.Context, p *models.Post, fields ...string) error {
	if len(fields) == 0 {
		fields = postFields
	}

	errs := &Errors{}
	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(p.Title) == "" {
				errs.Add(f, "A post must have a title")
			}
		case FieldUser:
			requireRef(errs, f, p.User.ID, "Post must belong to a user.")
		default:
			return fmt.Errorf("%w: post.%s", ErrUnknownField, f)
		}
	}

	return errs.Err()
}

func (v *ModelValidator) validateComment(_ context.Context, c *models.Comment, fields ...string) error {
	if len(fields) == 0 {
		fields = commentFields
	}

	errs := &Errors{}
	for _, f := range fields {
		switch f {
		case FieldText:
			if strings.TrimSpace(c.Text) == "" {
				errs.Add(f, "Comment can not be empty")
			}
		case FieldPost:
			requireRef(errs, f, c.Post.ID, "Comment must belong to a post.")
		case FieldUser:
			requireRef(errs, f, c.User.ID, "Comment must belong to a user.")
		default:
			return fmt.Errorf("%w: comment.%s", ErrUnknownField, f)
		}
	}

	return errs.Err()
}
