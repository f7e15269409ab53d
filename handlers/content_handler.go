package handlers

import (
	"net/http"

	"github.com/gridironlabs/gridiron-system/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// Landing handles GET /content/landing.
func (h *ContentHandler) Landing(w http.ResponseWriter, r *http.Request) {
	content, err := h.contentService.GetLandingContent(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, content, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Hero handles GET /content/hero.
func (h *ContentHandler) Hero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.contentService.GetHero(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"hero": hero}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Testimonials handles GET /content/testimonials.
func (h *ContentHandler) Testimonials(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.contentService.ListTestimonials(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"testimonials": testimonials}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// FAQ handles GET /content/faq.
func (h *ContentHandler) FAQ(w http.ResponseWriter, r *http.Request) {
	faq, err := h.contentService.ListFAQ(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"faq": faq}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Pricing handles GET /content/pricing.
func (h *ContentHandler) Pricing(w http.ResponseWriter, r *http.Request) {
	pricing, err := h.contentService.ListPricingPlans(r.Context())
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"pricing": pricing}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
