// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-natours/internal/store"
	"github.com/MKhiriev/go-natours/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router of the REST API.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.getServerVersion)
		r.Route("/users", h.userRoutes)
		r.Route("/tours", h.tourRoutes)
		r.Route("/reviews", h.reviewRoutes)
		r.Route("/posts", h.postRoutes)
		r.Route("/comments", h.commentRoutes)
	})

	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.notFound))

	return router
}

func (h *Handler) userRoutes(r chi.Router) {
	users := &resource[models.User]{
		h:            h,
		service:      h.services.UserService,
		readOptions:  unscopedWhen(paramIncludeInactive),
		writeOptions: unscopedWhen(paramIncludeInactive),
	}

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Post("/forgotPassword", h.forgotPassword)
	r.Patch("/resetPassword/{token}", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Patch("/updateMyPassword", h.updateMyPassword)
		r.Get("/me", h.getMe)
		r.Patch("/updateMe", h.updateMe)
		r.Delete("/deleteMe", h.deleteMe)

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleAdmin))

			r.Get("/", users.getAll)
			r.Get("/{id}", users.getOne)
			r.Patch("/{id}", users.updateOne)
			r.Delete("/{id}", users.deleteOne)
		})
	})
}

func (h *Handler) tourRoutes(r chi.Router) {
	tours := &resource[models.Tour]{
		h:            h,
		service:      h.services.TourService,
		populate:     []string{store.RelationReviews},
		readOptions:  unscopedWhen(paramIncludeSecret, models.RoleAdmin, models.RoleLeadGuide),
		writeOptions: alwaysUnscoped,
	}
	tourReviews := h.reviewResource().nested("id", "tour", func(rec *models.Review, tourID string) {
		if rec.Tour.ID == "" {
			rec.Tour = models.NewRef[models.Tour](tourID)
		}
	})

	r.Group(func(r chi.Router) {
		r.Use(h.identify)

		r.Get("/", tours.getAll)
		r.With(aliasTopTours).Get("/top-5-cheap", tours.getAll)
		r.Get("/tour-stats", h.tourStats)
		r.Get("/tours-within/{distance}/center/{latlng}/unit/{unit}", h.toursWithin)
		r.Get("/distances/{latlng}/unit/{unit}", h.distances)
		r.Get("/{id}", tours.getOne)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.With(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide)).
			Get("/monthly-plan/{year}", h.monthlyPlan)

		r.Get("/{id}/reviews", tourReviews.getAll)
		r.With(h.restrictTo(models.RoleUser)).Post("/{id}/reviews", tourReviews.createOne)

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))

			r.Post("/", tours.createOne)
			r.Patch("/{id}", tours.updateOne)
			r.Delete("/{id}", tours.deleteOne)
		})
	})
}

func (h *Handler) reviewResource() *resource[models.Review] {
	return &resource[models.Review]{h: h, service: h.services.ReviewService}
}

func (h *Handler) reviewRoutes(r chi.Router) {
	reviews := h.reviewResource()

	r.Use(h.protect)

	r.Get("/", reviews.getAll)
	r.Get("/{id}", reviews.getOne)
	r.With(h.restrictTo(models.RoleUser)).Post("/", reviews.createOne)
	r.With(h.restrictTo(models.RoleUser, models.RoleAdmin)).Patch("/{id}", reviews.updateOne)
	r.With(h.restrictTo(models.RoleUser, models.RoleAdmin)).Delete("/{id}", reviews.deleteOne)
}

func (h *Handler) postRoutes(r chi.Router) {
	posts := &resource[models.Post]{
		h:        h,
		service:  h.services.PostService,
		populate: []string{store.RelationComments},
	}
	postComments := h.commentResource().nested("id", "post", func(rec *models.Comment, postID string) {
		if rec.Post.ID == "" {
			rec.Post = models.NewRef[models.Post](postID)
		}
	})

	r.Get("/", posts.getAll)
	r.Get("/{id}", posts.getOne)
	r.Get("/{id}/comments", postComments.getAll)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Post("/", posts.createOne)
		r.Patch("/{id}", posts.updateOne)
		r.Delete("/{id}", posts.deleteOne)
		r.Post("/{id}/comments", postComments.createOne)
	})
}

func (h *Handler) commentResource() *resource[models.Comment] {
	return &resource[models.Comment]{h: h, service: h.services.CommentService}
}

func (h *Handler) commentRoutes(r chi.Router) {
	comments := h.commentResource()

	r.Get("/", comments.getAll)
	r.Get("/{id}", comments.getOne)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Patch("/{id}", comments.updateOne)
		r.Delete("/{id}", comments.deleteOne)
	})
}
