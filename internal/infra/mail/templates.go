package mail

// Templates da sequência de outreach, herdados da campanha original.
// Cada template tem variante por mercado; personalização via
// text/template com os campos de templateData.

// lastFollowUpTemplate é o teto da sequência escrita; follow-ups
// configurados além dele reusam este template.
const lastFollowUpTemplate = "follow_up_4"

type emailTemplate struct {
	Subject string
	Body    string
}

type templateData struct {
	FirstName    string
	Company      string
	Country      string
	Industry     string
	Amount       int
	Currency     string
	PaymentURL   string
	CalendlyLink string
}

var sequenceTemplates = map[string]map[string]emailTemplate{
	"initial": {
		"us": {
			Subject: "Quick question about {{.Company}}",
			Body: `<p>Hi {{.FirstName}},</p>
<p>I noticed you're the owner of {{.Company}} and I wanted to reach out.</p>
<p>We've been helping businesses like yours streamline their operations and increase revenue.</p>
<p>Would you be interested in a quick 15-minute chat to see if we could help you too?</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "Regarding your business: {{.Company}}",
			Body: `<p>Hello {{.FirstName}},</p>
<p>I came across {{.Company}} while researching leading businesses in your market.</p>
<p>Our company specializes in helping businesses like yours increase efficiency and growth.</p>
<p>Would you be open to a brief conversation about how we might help your business?</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"follow_up_1": {
		"us": {
			Subject: "Following up: {{.Company}}",
			Body: `<p>Hi {{.FirstName}},</p>
<p>Just checking in on my previous message. Would you be interested in learning more about how automation can help grow {{.Company}}?</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "Following up: {{.Company}}",
			Body: `<p>Hello {{.FirstName}},</p>
<p>Just following up on my earlier email. I would love to show you how businesses like {{.Company}} are saving hours every week.</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"follow_up_2": {
		"us": {
			Subject: "A case study you might like, {{.FirstName}}",
			Body: `<p>Hi {{.FirstName}},</p>
<p>I thought you might find this interesting: one of our clients saved 10+ hours/week with our automation system.</p>
<p>Let me know if you'd like to hear how that could work for {{.Company}}.</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "A case study you might like, {{.FirstName}}",
			Body: `<p>Hello {{.FirstName}},</p>
<p>A business similar to {{.Company}} recently increased their sales meetings by 45% with our system.</p>
<p>Happy to share the details if you're interested.</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"follow_up_3": {
		"us": {
			Subject: "Still interested, {{.FirstName}}?",
			Body: `<p>Hi {{.FirstName}},</p>
<p>We've helped businesses like yours increase lead generation by 300%. Happy to share how if you're interested.</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "Still interested, {{.FirstName}}?",
			Body: `<p>Hello {{.FirstName}},</p>
<p>We've helped businesses like yours increase lead generation by 300%. Happy to share how if you're interested.</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"follow_up_4": {
		"us": {
			Subject: "Final check-in, {{.FirstName}}",
			Body: `<p>Hi {{.FirstName}},</p>
<p>Final check-in from my side. If growing {{.Company}} with automation is on your radar this quarter, just reply and I'll send over the details.</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "Final check-in, {{.FirstName}}",
			Body: `<p>Hello {{.FirstName}},</p>
<p>Final check-in from my side. If this is something you'd like to explore later, just reply to this email anytime.</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"reply_follow_up": {
		"us": {
			Subject: "Great to hear from you, {{.FirstName}}!",
			Body: `<p>Great to hear from you, {{.FirstName}}! I'd be happy to share more details.</p>
<p>Would you prefer:</p>
<p>1. A quick 30-min call where I can show you a demo? Here's my calendar: <a href="{{.CalendlyLink}}">{{.CalendlyLink}}</a></p>
<p>2. A detailed email with case studies similar to your business?</p>
<p>Looking forward to your response!</p>`,
		},
		"india": {
			Subject: "Great to hear from you, {{.FirstName}}!",
			Body: `<p>Great to hear from you, {{.FirstName}}! I'd be happy to share more details.</p>
<p>Would you prefer:</p>
<p>1. A quick 30-min call where I can show you a demo? Here's my calendar: <a href="{{.CalendlyLink}}">{{.CalendlyLink}}</a></p>
<p>2. A detailed email with case studies similar to your business?</p>
<p>Looking forward to your response!</p>`,
		},
	},
	"payment_link": {
		"us": {
			Subject: "Your payment link for {{.Company}}",
			Body: `<p>Hi {{.FirstName}},</p>
<p>As discussed, here is your payment link for {{.Currency}} {{.Amount}}:</p>
<p><a href="{{.PaymentURL}}">{{.PaymentURL}}</a></p>
<p>Once the payment goes through we'll get started right away.</p>
<p>Best regards,<br>Your Name</p>`,
		},
		"india": {
			Subject: "Your payment link for {{.Company}}",
			Body: `<p>Hello {{.FirstName}},</p>
<p>As discussed, here is your payment link for {{.Currency}} {{.Amount}}:</p>
<p><a href="{{.PaymentURL}}">{{.PaymentURL}}</a></p>
<p>Once the payment is confirmed we'll begin onboarding immediately.</p>
<p>Regards,<br>Your Name</p>`,
		},
	},
	"onboarding": {
		"us": {
			Subject: "Welcome aboard, {{.FirstName}}!",
			Body: `<p>Hi {{.FirstName}},</p>
<p>Payment received, welcome aboard! Here's what happens next:</p>
<p>1. You'll get a kickoff email within 24 hours.<br>
2. We'll schedule your onboarding call.<br>
3. Your automation setup begins this week.</p>
<p>Excited to work with {{.Company}}!</p>`,
		},
		"india": {
			Subject: "Welcome aboard, {{.FirstName}}!",
			Body: `<p>Hello {{.FirstName}},</p>
<p>Payment received, welcome aboard! Here's what happens next:</p>
<p>1. You'll get a kickoff email within 24 hours.<br>
2. We'll schedule your onboarding call.<br>
3. Your automation setup begins this week.</p>
<p>Excited to work with {{.Company}}!</p>`,
		},
	},
}
