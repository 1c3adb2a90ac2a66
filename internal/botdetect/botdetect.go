// Package botdetect classifies HTTP requests as automated crawlers based on
// the User-Agent header. The short-link middleware uses it to route bots to
// a static preview instead of the interactive editor.
package botdetect

import "strings"

// tokens are lowercase substrings that identify crawler user agents. The
// list follows the common social/search preview fetchers.
var tokens = []string{
	"bot",
	"crawler",
	"spider",
	"crawling",
	"facebookexternalhit",
	"whatsapp",
	"telegrambot",
	"slackbot",
	"twitterbot",
	"discordbot",
	"linkedinbot",
	"embedly",
	"quora link preview",
	"pinterest",
	"vkshare",
	"curl",
	"wget",
	"python-requests",
	"headlesschrome",
	"lighthouse",
	"google page speed",
	"qwantify",
	"bitlybot",
	"nuzzel",
	"xing-contenttabreceiver",
	"chrome-lighthouse",
}

// IsBot reports whether the user agent belongs to an automated crawler.
// An empty user agent is treated as a bot: no interactive browser omits it.
func IsBot(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return true
	}
	ua := strings.ToLower(userAgent)
	for _, tok := range tokens {
		if strings.Contains(ua, tok) {
			return true
		}
	}
	return false
}
