package registry

import (
	"github.com/khalidmt90/subnav/internal/database/models"
)

// defaultEntries returns the built-in merchant catalog. Order matters:
// lookups take the first match.
func defaultEntries() []Entry {
	return []Entry{
		// Streaming services
		{Key: "netflix", Category: models.CategoryStreaming, Color: "#E50914"},
		{Key: "spotify", Category: models.CategoryStreaming, Color: "#1DB954"},
		{Key: "apple music", Category: models.CategoryStreaming, Color: "#FA243C", Aliases: []string{"applemusic"}},
		{Key: "youtube premium", Category: models.CategoryStreaming, Color: "#FF0000", Aliases: []string{"youtube", "yt premium"}},
		{Key: "youtube music", Category: models.CategoryStreaming, Color: "#FF0000", Aliases: []string{"youtubemusic"}},
		{Key: "disney", Category: models.CategoryStreaming, Color: "#113CCF", Aliases: []string{"disney+", "disneyplus"}},
		{Key: "hulu", Category: models.CategoryStreaming, Color: "#1CE783"},
		{Key: "amazon prime", Category: models.CategoryStreaming, Color: "#00A8E1", Aliases: []string{"prime video", "primevideo"}},
		{Key: "apple tv", Category: models.CategoryStreaming, Color: "#000000", Aliases: []string{"appletv", "apple tv+"}},
		{Key: "hbo", Category: models.CategoryStreaming, Color: "#000000", Aliases: []string{"hbo max", "hbomax"}},
		{Key: "peacock", Category: models.CategoryStreaming, Color: "#000000"},
		{Key: "paramount", Category: models.CategoryStreaming, Color: "#0064FF", Aliases: []string{"paramount+"}},

		// AI & software
		{Key: "chatgpt", Category: models.CategorySoftware, Color: "#10A37F", Aliases: []string{"chatgpt plus", "gpt", "gpt-4"}},
		{Key: "openai", Category: models.CategorySoftware, Color: "#10A37F"},
		{Key: "claude", Category: models.CategorySoftware, Color: "#D97757", Aliases: []string{"anthropic", "claude pro"}},
		{Key: "anthropic", Category: models.CategorySoftware, Color: "#D97757"},
		{Key: "midjourney", Category: models.CategorySoftware, Color: "#000000"},

		// Social media
		{Key: "x premium", Category: models.CategorySoftware, Color: "#000000", Aliases: []string{"twitter blue", "twitter premium"}},
		{Key: "twitter", Category: models.CategorySoftware, Color: "#1DA1F2", Aliases: []string{"twitter blue"}},
		{Key: "linkedin", Category: models.CategorySoftware, Color: "#0A66C2", Aliases: []string{"linkedin premium"}},

		// Cloud & storage
		{Key: "dropbox", Category: models.CategoryCloud, Color: "#0061FF"},
		{Key: "google one", Category: models.CategoryCloud, Color: "#4285F4", Aliases: []string{"googleone"}},
		{Key: "icloud", Category: models.CategoryCloud, Color: "#3693F3", Aliases: []string{"icloud+"}},
		{Key: "onedrive", Category: models.CategoryCloud, Color: "#0078D4"},

		// Productivity
		{Key: "adobe", Category: models.CategorySoftware, Color: "#FF0000", Aliases: []string{"creative cloud", "adobe cc"}},
		{Key: "microsoft", Category: models.CategorySoftware, Color: "#00A4EF", Aliases: []string{"microsoft 365", "m365"}},
		{Key: "office 365", Category: models.CategorySoftware, Color: "#D83B01", Aliases: []string{"office365"}},
		{Key: "notion", Category: models.CategorySoftware, Color: "#000000"},
		{Key: "canva", Category: models.CategorySoftware, Color: "#00C4CC", Aliases: []string{"canva pro"}},
		{Key: "figma", Category: models.CategorySoftware, Color: "#F24E1E"},

		// Development
		{Key: "github", Category: models.CategorySoftware, Color: "#24292e", Aliases: []string{"github pro", "github copilot"}},
		{Key: "gitlab", Category: models.CategorySoftware, Color: "#FC6D26"},
		{Key: "vercel", Category: models.CategorySoftware, Color: "#000000"},
		{Key: "netlify", Category: models.CategorySoftware, Color: "#00C7B7"},
		{Key: "replit", Category: models.CategorySoftware, Color: "#F26207", Aliases: []string{"repl.it"}},
		{Key: "grammarly", Category: models.CategorySoftware, Color: "#15C39A", Aliases: []string{"grammarly pro", "grammarly premium"}},

		// News & media
		{Key: "audible", Category: models.CategoryStreaming, Color: "#FF9900"},
		{Key: "kindle", Category: models.CategoryStreaming, Color: "#FF9900", Aliases: []string{"kindle unlimited"}},
		{Key: "new york times", Category: models.CategoryStreaming, Color: "#000000", Aliases: []string{"nyt", "nytimes"}},
		{Key: "medium", Category: models.CategoryStreaming, Color: "#000000"},
		{Key: "substack", Category: models.CategoryStreaming, Color: "#FF6719"},

		// Gaming
		{Key: "playstation", Category: models.CategoryStreaming, Color: "#003791", Aliases: []string{"ps plus", "playstation plus"}},
		{Key: "xbox", Category: models.CategoryStreaming, Color: "#107C10", Aliases: []string{"xbox live", "game pass", "xbox game pass"}},
		{Key: "steam", Category: models.CategoryStreaming, Color: "#171A21"},
		{Key: "nintendo", Category: models.CategoryStreaming, Color: "#E60012", Aliases: []string{"nintendo online", "switch online"}},

		// VPN & security
		{Key: "nordvpn", Category: models.CategorySoftware, Color: "#4687FF", Aliases: []string{"nord vpn"}},
		{Key: "expressvpn", Category: models.CategorySoftware, Color: "#DA3940", Aliases: []string{"express vpn"}},
		{Key: "1password", Category: models.CategorySoftware, Color: "#0094F5"},
		{Key: "lastpass", Category: models.CategorySoftware, Color: "#D32D27"},
		{Key: "dashlane", Category: models.CategorySoftware, Color: "#0E3E51"},

		// Fitness & health
		{Key: "apple fitness", Category: models.CategoryStreaming, Color: "#FA243C", Aliases: []string{"fitness+", "apple fitness+"}},
		{Key: "peloton", Category: models.CategoryStreaming, Color: "#000000"},
		{Key: "headspace", Category: models.CategoryStreaming, Color: "#F47D31"},
		{Key: "calm", Category: models.CategoryStreaming, Color: "#2DCDDF"},
		{Key: "strava", Category: models.CategoryStreaming, Color: "#FC4C02"},

		// Web hosting & domains
		{Key: "namecheap", Category: models.CategoryCloud, Color: "#FF6C2C"},
		{Key: "godaddy", Category: models.CategoryCloud, Color: "#1BDBDB"},
		{Key: "bluehost", Category: models.CategoryCloud, Color: "#3D5AFE"},
		{Key: "squarespace", Category: models.CategoryCloud, Color: "#000000"},
		{Key: "wix", Category: models.CategoryCloud, Color: "#0C6EFC"},
		{Key: "wordpress", Category: models.CategoryCloud, Color: "#21759B", Aliases: []string{"wordpress.com"}},

		// Email & communication
		{Key: "mailchimp", Category: models.CategorySoftware, Color: "#FFE01B"},
		{Key: "sendgrid", Category: models.CategorySoftware, Color: "#1A82E2"},
		{Key: "zoom", Category: models.CategorySoftware, Color: "#2D8CFF"},
		{Key: "slack", Category: models.CategorySoftware, Color: "#4A154B"},

		// Design & learning
		{Key: "shutterstock", Category: models.CategorySoftware, Color: "#EE2B24"},
		{Key: "skillshare", Category: models.CategoryStreaming, Color: "#00C1B2"},
		{Key: "masterclass", Category: models.CategoryStreaming, Color: "#000000"},

		// Payment & finance
		{Key: "paypal", Category: models.CategoryFinance, Color: "#003087"},
		{Key: "stripe", Category: models.CategoryFinance, Color: "#635BFF"},
		{Key: "quickbooks", Category: models.CategoryFinance, Color: "#2CA01C"},

		// Telecom
		{Key: "verizon", Category: models.CategoryTelecom, Color: "#CD040B"},
		{Key: "at&t", Category: models.CategoryTelecom, Color: "#00A8E0", Aliases: []string{"att"}},
		{Key: "tmobile", Category: models.CategoryTelecom, Color: "#E20074", Aliases: []string{"t-mobile"}},
		{Key: "vodafone", Category: models.CategoryTelecom, Color: "#E60000"},
		{Key: "stc", Category: models.CategoryTelecom, Color: "#6F2C91", Aliases: []string{"saudi telecom", "سطع"}},
		{Key: "mobily", Category: models.CategoryTelecom, Color: "#76BC21", Aliases: []string{"موبايلي"}},
		{Key: "zain", Category: models.CategoryTelecom, Color: "#6E2C91", Aliases: []string{"زين"}},
		{Key: "virgin mobile", Category: models.CategoryTelecom, Color: "#E10A0A", Aliases: []string{"virgin"}},

		// Middle Eastern streaming
		{Key: "shahid", Category: models.CategoryStreaming, Color: "#D50F25", Aliases: []string{"shahid vip", "شاهد"}},
		{Key: "osn", Category: models.CategoryStreaming, Color: "#000000", Aliases: []string{"osn+", "osn streaming"}},
		{Key: "starzplay", Category: models.CategoryStreaming, Color: "#000000", Aliases: []string{"starz play"}},

		// Social media premium
		{Key: "snapchat", Category: models.CategorySoftware, Color: "#FFFC00", Aliases: []string{"snapchat+", "snap+"}},
		{Key: "telegram", Category: models.CategorySoftware, Color: "#0088CC", Aliases: []string{"telegram premium"}},
		{Key: "discord", Category: models.CategorySoftware, Color: "#5865F2", Aliases: []string{"discord nitro", "nitro"}},
		{Key: "instagram", Category: models.CategorySoftware, Color: "#E4405F", Aliases: []string{"instagram+", "meta verified"}},

		// Food delivery & transport
		{Key: "careem", Category: models.CategoryFood, Color: "#00B140", Aliases: []string{"careem plus"}},
		{Key: "uber", Category: models.CategoryFood, Color: "#000000", Aliases: []string{"uber one", "uber eats"}},
		{Key: "deliveroo", Category: models.CategoryFood, Color: "#00CCBC", Aliases: []string{"deliveroo plus"}},
		{Key: "talabat", Category: models.CategoryFood, Color: "#FF5A00", Aliases: []string{"talabat pro", "طلبات"}},
		{Key: "jahez", Category: models.CategoryFood, Color: "#FF6B00", Aliases: []string{"jahez plus", "جاهز"}},
		{Key: "hungerstation", Category: models.CategoryFood, Color: "#FF2D55", Aliases: []string{"hunger station", "هنقرستيشن"}},

		// More gaming
		{Key: "epic games", Category: models.CategoryStreaming, Color: "#313131", Aliases: []string{"epic", "epicgames"}},
		{Key: "ea play", Category: models.CategoryStreaming, Color: "#FF1E3C", Aliases: []string{"eaplay", "ea access"}},
		{Key: "ubisoft", Category: models.CategoryStreaming, Color: "#0080FF", Aliases: []string{"ubisoft+", "uplay"}},

		// Saudi / Middle East services
		{Key: "karzoun", Category: models.CategoryOther, Color: "#FF6B35", Aliases: []string{"كرزون"}},
		{Key: "noon", Category: models.CategoryOther, Color: "#FEEE00", Aliases: []string{"نون", "noon vip"}},
		{Key: "tamara", Category: models.CategoryFinance, Color: "#2B2E4A", Aliases: []string{"تمارا"}},
		{Key: "tabby", Category: models.CategoryFinance, Color: "#3DFFC0", Aliases: []string{"تابي"}},
		{Key: "stc pay", Category: models.CategoryFinance, Color: "#6F2C91", Aliases: []string{"stcpay"}},
		{Key: "mada", Category: models.CategoryFinance, Color: "#004B87", Aliases: []string{"مدى"}},
		{Key: "tawakkalna", Category: models.CategorySoftware, Color: "#2E8B57", Aliases: []string{"توكلنا"}},
		{Key: "absher", Category: models.CategorySoftware, Color: "#006633", Aliases: []string{"أبشر"}},
		{Key: "nana", Category: models.CategoryFood, Color: "#6CBD45", Aliases: []string{"نعناع", "nana direct"}},
		{Key: "toyou", Category: models.CategoryFood, Color: "#FF3366", Aliases: []string{"to you", "تو يو"}},
		{Key: "mrsool", Category: models.CategoryFood, Color: "#FFCC00", Aliases: []string{"مرسول"}},
		{Key: "anghami", Category: models.CategoryStreaming, Color: "#1E003B", Aliases: []string{"أنغامي"}},
		{Key: "webook", Category: models.CategoryStreaming, Color: "#E91E63", Aliases: []string{"ويبوك"}},
		{Key: "salla", Category: models.CategorySoftware, Color: "#004BFF", Aliases: []string{"سلة"}},
		{Key: "zid", Category: models.CategorySoftware, Color: "#5B2AEF", Aliases: []string{"زد"}},
		{Key: "rewaa", Category: models.CategorySoftware, Color: "#4CAF50", Aliases: []string{"رواء"}},
		{Key: "moyasar", Category: models.CategoryFinance, Color: "#1A237E", Aliases: []string{"ميسر"}},
		{Key: "foodics", Category: models.CategorySoftware, Color: "#FF6600", Aliases: []string{"فودكس"}},
	}
}
