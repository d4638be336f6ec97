package mockserver

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"threatscope/models"
)

var (
	ipPattern   = regexp.MustCompile(`\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`)
	linkPattern = regexp.MustCompile(`(?i)https?://\S+`)
)

var phishingPhrases = []string{
	"verify your account",
	"verify your password",
	"account suspended",
	"account is suspended",
	"urgent",
	"immediately",
	"click here",
	"confirm your identity",
	"update your payment",
	"login",
	"password",
	"wire transfer",
	"gift card",
	"winner",
	"limited time",
	"unusual activity",
}

// URLFeatures are the lexical URL signals, each -1 (suspicious), 0
// (borderline) or 1 (legitimate).
type URLFeatures struct {
	HavingIPAddress        int `json:"having_IP_Address"`
	URLLength              int `json:"URL_Length"`
	HavingAtSymbol         int `json:"having_At_Symbol"`
	DoubleSlashRedirecting int `json:"double_slash_redirecting"`
	PrefixSuffix           int `json:"Prefix_Suffix"`
	HavingSubDomain        int `json:"having_Sub_Domain"`
}

func ExtractURLFeatures(raw string) URLFeatures {
	var f URLFeatures

	f.HavingIPAddress = -1
	if ipPattern.MatchString(raw) {
		f.HavingIPAddress = 1
	}

	switch n := len(raw); {
	case n < 54:
		f.URLLength = 1
	case n <= 75:
		f.URLLength = 0
	default:
		f.URLLength = -1
	}

	f.HavingAtSymbol = 1
	if strings.Contains(raw, "@") {
		f.HavingAtSymbol = -1
	}

	f.DoubleSlashRedirecting = 1
	if len(raw) > 7 && strings.Contains(raw[7:], "//") {
		f.DoubleSlashRedirecting = -1
	}

	domain := hostPart(raw)
	f.PrefixSuffix = 1
	if strings.Contains(domain, "-") {
		f.PrefixSuffix = -1
	}

	switch strings.Count(domain, ".") {
	case 1:
		f.HavingSubDomain = 1
	case 2:
		f.HavingSubDomain = 0
	default:
		f.HavingSubDomain = -1
	}

	return f
}

// hostPart drops any scheme, path and credentials from raw.
func hostPart(raw string) string {
	if i := strings.Index(raw, "://"); i >= 0 {
		raw = raw[i+3:]
	}
	raw = strings.SplitN(raw, "/", 2)[0]
	if i := strings.LastIndex(raw, "@"); i >= 0 {
		raw = raw[i+1:]
	}
	return raw
}

// urlThreat scores a URL from its features. The IP feature is 1 when an
// address is present, which is the suspicious case.
func urlThreat(raw string) float64 {
	f := ExtractURLFeatures(raw)

	threat := 0.0
	if f.HavingIPAddress == 1 {
		threat += 30
	}
	threat += featureWeight(f.URLLength, 15)
	threat += featureWeight(f.HavingAtSymbol, 20)
	threat += featureWeight(f.DoubleSlashRedirecting, 15)
	threat += featureWeight(f.PrefixSuffix, 10)
	threat += featureWeight(f.HavingSubDomain, 10)

	if strings.HasPrefix(strings.ToLower(raw), "http://") {
		threat += 5
	}
	return math.Min(threat, 100)
}

func featureWeight(v int, weight float64) float64 {
	switch v {
	case -1:
		return weight
	case 0:
		return weight / 2
	default:
		return 0
	}
}

// emailThreat scores an email body by phrase hits, link count and the
// share of upper-case letters.
func emailThreat(body string) float64 {
	lower := strings.ToLower(body)

	hits := 0
	for _, phrase := range phishingPhrases {
		if strings.Contains(lower, phrase) {
			hits++
		}
	}

	links := len(linkPattern.FindAllString(body, -1))

	letters, upper := 0, 0
	for _, r := range body {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	shouting := 0.0
	if letters > 20 {
		shouting = float64(upper) / float64(letters)
	}

	threat := float64(hits)*14 + math.Min(float64(links), 3)*8 + shouting*30
	for _, l := range linkPattern.FindAllString(body, -1) {
		if ipPattern.MatchString(l) {
			threat += 15
			break
		}
	}
	return math.Min(threat, 100)
}

// ThreatLevel buckets a threat probability in percent.
func ThreatLevel(threat float64) string {
	switch {
	case threat < 20:
		return "Very Low"
	case threat < 40:
		return "Low"
	case threat < 60:
		return "Medium"
	case threat < 80:
		return "High"
	default:
		return "Critical"
	}
}

// Classify produces the classifier's answer for one input.
func Classify(text string, mode models.Mode) models.AnalysisResult {
	var threat float64
	if mode == models.ModeURL {
		threat = urlThreat(strings.TrimSpace(text))
	} else {
		threat = emailThreat(text)
	}

	return models.AnalysisResult{
		SecurityScore: math.Round((100-threat)*100) / 100,
		ThreatLevel:   ThreatLevel(threat),
		IsMalicious:   threat > 50,
	}
}
