package industry_test

const lawFirmsYAML = `
name: Law Firms
slug: law_firms
search_keywords: ["family lawyer", "divorce attorney"]
locations: ["Toronto", "Ottawa"]
pain_points:
  - Outdated website design
  - No online booking
  - Slow page loads
  - Missing practice area pages
  - Weak reviews
kpis: ["consultation requests"]
trust_signals: ["Bar association badges", "Client testimonials", "Case results", "Awards"]
offer_angle: Turn your site into a consultation engine
analysis_focus: Credibility and clarity of practice areas
outreach_angle: Lead with lost consultations
priority_indicators:
  high: ["Slow website", "Missing SSL certificate", "No contact form", "No reviews"]
  medium: ["Outdated design"]
  low: ["No blog"]
`
