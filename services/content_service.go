package services

import (
	"context"

	"github.com/gridironlabs/gridiron-system/models"
)

type ContentService interface {
	GetLandingContent(ctx context.Context) (*models.LandingContent, error)
	GetHero(ctx context.Context) (*models.HeroContent, error)
	ListTestimonials(ctx context.Context) ([]models.Testimonial, error)
	ListFAQ(ctx context.Context) ([]models.FAQItem, error)
	ListPricingPlans(ctx context.Context) ([]models.PricingPlan, error)
}

// contentService serves the marketing copy from memory. The blocks are
// versioned with the binary; moving them to the database is not worth a
// table until the copy changes more often than the code.
type contentService struct {
	content models.LandingContent
}

func NewContentService() ContentService {
	return &contentService{content: defaultLandingContent()}
}

func (s *contentService) GetLandingContent(ctx context.Context) (*models.LandingContent, error) {
	c := s.content
	return &c, nil
}

func (s *contentService) GetHero(ctx context.Context) (*models.HeroContent, error) {
	h := s.content.Hero
	return &h, nil
}

func (s *contentService) ListTestimonials(ctx context.Context) ([]models.Testimonial, error) {
	return append([]models.Testimonial(nil), s.content.Testimonials...), nil
}

func (s *contentService) ListFAQ(ctx context.Context) ([]models.FAQItem, error) {
	return append([]models.FAQItem(nil), s.content.FAQ...), nil
}

func (s *contentService) ListPricingPlans(ctx context.Context) ([]models.PricingPlan, error) {
	return append([]models.PricingPlan(nil), s.content.Pricing...), nil
}

func defaultLandingContent() models.LandingContent {
	return models.LandingContent{
		Hero: models.HeroContent{
			Headline:    "Every line. Every book. One board.",
			Subheadline: "Track NFL odds across every major sportsbook, catch line movement the second it happens, and get injury news before the market reacts.",
			CTALabel:    "Start shopping lines",
			CTAHref:     "/signup",
		},
		Testimonials: []models.Testimonial{
			{
				ID:     1,
				Author: "Marcus Webb",
				Role:   "DFS grinder",
				Quote:  "The consensus board saved me from taking -118 when three books had -105. It pays for itself in a weekend.",
				Rating: 5,
			},
			{
				ID:     2,
				Author: "Dana Kowalski",
				Role:   "Season-long commissioner",
				Quote:  "Injury alerts land minutes before the beat writers' posts hit my feed. I set my lineup with information everyone else gets later.",
				Rating: 5,
			},
			{
				ID:     3,
				Author: "Theo Ramirez",
				Role:   "Props bettor",
				Quote:  "Player prop lines across six books in one table. I stopped tab-hopping the first day.",
				Rating: 4,
			},
		},
		FAQ: []models.FAQItem{
			{
				ID:       1,
				Question: "Which sportsbooks do you cover?",
				Answer:   "Every major US book, including DraftKings, FanDuel, BetMGM and Caesars. Coverage follows the odds feed, so new books appear automatically.",
			},
			{
				ID:       2,
				Question: "How fresh are the odds?",
				Answer:   "Lines refresh every five minutes during the season, and line movements are pushed to your browser live over a websocket.",
			},
			{
				ID:       3,
				Question: "Where does the injury data come from?",
				Answer:   "We monitor trusted NFL beat writers and pair their reports with official roster designations. Each report shows its source tweet and a confidence score.",
			},
			{
				ID:       4,
				Question: "Can I cancel anytime?",
				Answer:   "Yes. Plans are month to month with no lock-in, and the free tier never expires.",
			},
		},
		Pricing: []models.PricingPlan{
			{
				ID:         1,
				Name:       "Free",
				PriceCents: 0,
				Interval:   "month",
				Features: []string{
					"Moneyline, spread and total odds",
					"Consensus board for every game",
					"Delayed line movement history",
				},
			},
			{
				ID:         2,
				Name:       "Sharp",
				PriceCents: 1900,
				Interval:   "month",
				Features: []string{
					"Everything in Free",
					"Live line movement alerts",
					"Player prop coverage",
					"Injury reports with source tweets",
				},
				Highlighted: true,
			},
			{
				ID:         3,
				Name:       "Syndicate",
				PriceCents: 9900,
				Interval:   "month",
				Features: []string{
					"Everything in Sharp",
					"Full odds snapshot history",
					"Websocket API access",
					"Priority support",
				},
			},
		},
	}
}
