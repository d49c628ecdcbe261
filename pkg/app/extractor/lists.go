package extractor

// Keywords commonly found in credential-harvesting paths and queries.
var suspiciousKeywords = []string{
	"login", "signin", "sign-in", "verify", "verification", "secure", "account",
	"update", "confirm", "banking", "password", "credential", "wallet", "crypto",
	"bitcoin", "urgent", "alert", "suspended", "limited", "unlock", "click",
	"free", "prize", "winner", "congratulations", "bonus", "webscr", "ebayisapi",
}

var brandNames = []string{
	"paypal", "amazon", "apple", "microsoft", "google", "facebook", "netflix",
	"instagram", "twitter", "linkedin", "dropbox", "chase", "wellsfargo",
	"bankofamerica", "citibank", "hsbc", "barclays", "ebay", "outlook", "office365",
}

var shorteners = toSet(
	"bit.ly", "tinyurl.com", "goo.gl", "t.co", "ow.ly", "is.gd", "buff.ly",
	"adf.ly", "tr.im", "short.link", "rb.gy", "cutt.ly", "shorturl.at", "tiny.cc",
)

var suspiciousTLDs = toSet(
	"xyz", "top", "club", "online", "site", "tk", "ml", "ga", "cf", "gq",
	"pw", "cc", "info", "biz", "cn", "ru", "work", "click", "zip", "mov",
)

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// SuspiciousTLD reports whether tld (without dot) is on the denylist.
func SuspiciousTLD(tld string) bool {
	_, ok := suspiciousTLDs[tld]
	return ok
}

// Shortener reports whether domain is a known URL shortener.
func Shortener(domain string) bool {
	_, ok := shorteners[domain]
	return ok
}
