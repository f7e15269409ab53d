package models

// Landing page content blocks. The marketing site renders these
// verbatim; the service owns the copy so the front end stays static.

type HeroContent struct {
	Headline    string `json:"headline"`
	Subheadline string `json:"subheadline"`
	CTALabel    string `json:"cta_label"`
	CTAHref     string `json:"cta_href"`
	ImageURL    string `json:"image_url,omitempty"`
}

type Testimonial struct {
	ID        int    `json:"id"`
	Author    string `json:"author"`
	Role      string `json:"role"`
	Quote     string `json:"quote"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Rating    int    `json:"rating"`
}

type FAQItem struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type PricingPlan struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	PriceCents  int      `json:"price_cents"`
	Interval    string   `json:"interval"`
	Features    []string `json:"features"`
	Highlighted bool     `json:"highlighted"`
}

// LandingContent is the aggregate payload for GET /content/landing.
type LandingContent struct {
	Hero         HeroContent   `json:"hero"`
	Testimonials []Testimonial `json:"testimonials"`
	FAQ          []FAQItem     `json:"faq"`
	Pricing      []PricingPlan `json:"pricing"`
}
