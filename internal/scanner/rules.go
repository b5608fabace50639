package scanner

// Ruleset holds the keyword and pattern lists driving classification and
// extraction. The lists are data, not control flow, so deployments can
// extend them (new merchants, new locales) without touching the pipeline.
type Ruleset struct {
	// SubscriptionKeywords is the broad billing/membership vocabulary tier.
	SubscriptionKeywords []string
	// RecurringIndicators is the narrower tier of phrases that signal
	// ongoing auto-renewing billing. Matching one both admits a message and
	// raises its confidence.
	RecurringIndicators []string
	// ExclusionPatterns reject a message outright; they take precedence
	// over every inclusion signal.
	ExclusionPatterns []string
	// NewsletterDomains are bulk-sender domains rejected by sender address.
	NewsletterDomains []string
	// TrialTerms mark a subscription as a trial.
	TrialTerms []string
	// TopServices feed the inbox search query built by the orchestrator.
	TopServices []string
}

// DefaultRuleset returns the built-in English/Arabic rule lists
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		SubscriptionKeywords: []string{
			"subscription", "renewal", "recurring", "monthly charge",
			"billing", "invoice", "receipt", "payment", "membership",
			"your plan", "premium", "pro plan", "annual plan",
			"notification", "charged", "auto-renew", "subscription renewal",
			"payment confirmation", "billing statement", "your receipt",
			"monthly subscription", "annual subscription", "plan renewal",
			"payment received", "payment processed", "thank you for your payment",
			"successfully charged", "transaction", "order confirmation",
			// Arabic keywords
			"اشتراك", "تجديد", "فاتورة", "دفع", "عضوية", "إشعار",
			"تم الدفع", "إيصال", "سداد", "تأكيد الدفع", "رسوم", "مبلغ",
			"تجديد تلقائي", "باقة", "خطة", "اشتراكك", "تجديد الاشتراك",
			"تذكير", "موعد التجديد", "تم خصم", "تم تحصيل", "حسابك",
		},
		RecurringIndicators: []string{
			"recurring", "auto-renew", "automatically renew", "subscription",
			"monthly", "annually", "yearly", "per month", "per year",
			"next billing", "billing cycle", "renewal date",
			"will be charged", "will renew", "continues", "ongoing",
			"charged your", "payment processed", "paid successfully",
			"receipt for your", "invoice for your", "your payment of",
			// Arabic
			"تجديد تلقائي", "شهري", "سنوي", "اشتراك", "تجديد الاشتراك",
			"تم خصم", "تم تحصيل", "تم الدفع", "سداد", "رسوم شهرية",
			"موعد التجديد", "تذكير بالتجديد", "اشتراكك",
		},
		ExclusionPatterns: []string{
			"newsletter", "daily digest", "weekly update", "monthly roundup",
			"promotional", "limited time offer", "flash sale", "clearance",
			"upgrade for free", "claim your discount", "save up to",
			"ends tomorrow", "last chance", "exclusive offer", "special offer",
			"usage alert", "usage notification", "usage summary", "spent on usage",
			"manage your subscription preferences",
			"تخفيضات", "عرض خاص", "عرض محدود",
		},
		NewsletterDomains: []string{
			"substack.com", "beehiiv.com", "mailchimp.com", "sendgrid.net", "convertkit.com",
		},
		TrialTerms: []string{
			"trial", "free", "تجربة",
		},
		TopServices: []string{
			// Streaming
			"Netflix", "Spotify", "Amazon Prime", "Apple", "YouTube Premium", "Disney",
			"Hulu", "HBO", "Peacock", "Paramount", "Shahid", "OSN", "StarzPlay",
			// AI & creative
			"ChatGPT", "Claude", "OpenAI", "Anthropic", "Midjourney", "Canva",
			"Adobe", "Figma", "Notion",
			// Cloud & productivity
			"Microsoft", "GitHub", "Dropbox", "Google One", "iCloud",
			"Slack", "Zoom", "Office 365",
			// Social media
			"LinkedIn", "Twitter", "Snapchat", "Telegram", "Discord", "Instagram",
			// Gaming
			"PlayStation", "Xbox", "Steam", "Nintendo", "Epic Games", "EA Play",
			// VPN & security
			"NordVPN", "ExpressVPN", "1Password", "LastPass",
			// Telecom (Saudi)
			"STC", "Mobily", "Zain", "Virgin Mobile",
			// Other
			"Audible", "Kindle", "Peloton", "Headspace", "Calm",
			"Careem", "Uber", "Deliveroo", "Talabat", "Jahez", "HungerStation",
		},
	}
}
