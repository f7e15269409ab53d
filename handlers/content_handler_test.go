package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gridironlabs/gridiron-system/models"
	"github.com/gridironlabs/gridiron-system/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContentTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	handler := NewContentHandler(services.NewContentService())
	router := chi.NewRouter()
	router.Route("/content", func(r chi.Router) {
		r.Get("/landing", handler.Landing)
		r.Get("/hero", handler.Hero)
		r.Get("/testimonials", handler.Testimonials)
		r.Get("/faq", handler.FAQ)
		r.Get("/pricing", handler.Pricing)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func TestLandingEndpoint(t *testing.T) {
	server := newContentTestServer(t)

	resp, err := http.Get(server.URL + "/content/landing")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var content models.LandingContent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&content))

	assert.NotEmpty(t, content.Hero.Headline)
	assert.NotEmpty(t, content.Hero.CTALabel)
	assert.NotEmpty(t, content.Testimonials)
	assert.NotEmpty(t, content.FAQ)
	assert.NotEmpty(t, content.Pricing)
}

func TestContentBlockEndpoints(t *testing.T) {
	server := newContentTestServer(t)

	t.Run("testimonials carry ratings", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/content/testimonials")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Testimonials []models.Testimonial `json:"testimonials"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Testimonials)
		for _, tm := range body.Testimonials {
			assert.NotEmpty(t, tm.Author)
			assert.NotEmpty(t, tm.Quote)
			assert.GreaterOrEqual(t, tm.Rating, 1)
			assert.LessOrEqual(t, tm.Rating, 5)
		}
	})

	t.Run("faq answers every question", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/content/faq")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			FAQ []models.FAQItem `json:"faq"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.FAQ)
		for _, item := range body.FAQ {
			assert.NotEmpty(t, item.Question)
			assert.NotEmpty(t, item.Answer)
		}
	})

	t.Run("pricing includes a free tier", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/content/pricing")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Pricing []models.PricingPlan `json:"pricing"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.NotEmpty(t, body.Pricing)

		hasFree := false
		for _, plan := range body.Pricing {
			if plan.PriceCents == 0 {
				hasFree = true
			}
			assert.NotEmpty(t, plan.Features)
		}
		assert.True(t, hasFree)
	})
}
