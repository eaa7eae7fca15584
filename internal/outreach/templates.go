package outreach

const tierNamedBody = `Hi {{.FirstName}},

I was looking at {{.CompanyName}}'s website ({{.Domain}}) and noticed {{.SpecificIssue}}.

{{.Insight}}

I help businesses like {{.CompanyName}} turn their website into a steady source of new clients. Would you be open to a short call this week? I can walk you through what I found.

Best,
{{.SenderName}}
{{.SenderCompany}}
`

const tierCompanyBody = `Hello,

I came across {{.CompanyName}} while reviewing websites in your area and noticed {{.SpecificIssue}} on {{.Domain}}.

{{.Insight}}

If it would help, I'm happy to share a short breakdown of what I found and how {{.CompanyName}} could fix it.

Best,
{{.SenderName}}
{{.SenderCompany}}
`

const tierGenericBody = `Hi there,

I was browsing {{.Domain}} and noticed {{.SpecificIssue}}.

{{.Insight}}

I run a small consultancy that helps businesses tighten up their digital presence. No pressure, just wanted to share that observation.

Best,
{{.SenderName}}
{{.SenderCompany}}
`
