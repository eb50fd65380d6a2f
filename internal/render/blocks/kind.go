package blocks

import (
	"strings"
	"unicode"
)

// Kind is a CMS blockType the renderer knows how to draw. Values are the
// blockType strings as Payload stores them.
type Kind string

const (
	KindUnknown              Kind = ""
	KindHero                 Kind = "hero"
	KindIntroduction         Kind = "introduction"
	KindCompanyIntro         Kind = "companyIntro"
	KindPainPoints           Kind = "painPoints"
	KindStatsCards           Kind = "statsCards"
	KindStatsCharts          Kind = "statsCharts"
	KindQuoteStandard        Kind = "quoteStandard"
	KindQuoteFeatured        Kind = "quoteFeatured"
	KindBodyText             Kind = "bodyText"
	KindCaseStudyBodyText    Kind = "caseStudyBodyText"
	KindImageShowcase        Kind = "imageShowcase"
	KindSingleImage          Kind = "singleImage"
	KindDualImage            Kind = "dualImage"
	KindSplitBackgroundImage Kind = "splitBackgroundImage"
	KindVideo                Kind = "video"
	KindBentoGrid            Kind = "bentoGrid"
	KindCTA                  Kind = "cta"
	KindLogoGrid             Kind = "logoGrid"
	KindServicesSection      Kind = "servicesSection"
	KindServicesGrid         Kind = "servicesGrid"
	KindAwardsGrid           Kind = "awardsGrid"
	KindBlogCarousel         Kind = "blogCarousel"
	KindScrollHijackCarousel Kind = "scrollHijackCarousel"
	KindCarousel             Kind = "carousel"
	KindPageHeader           Kind = "pageHeader"
	KindTwoColumnText        Kind = "twoColumnText"
	KindAccordion            Kind = "accordion"
	KindFAQSection           Kind = "faqSection"
)

var allKinds = []Kind{
	KindHero,
	KindIntroduction,
	KindCompanyIntro,
	KindPainPoints,
	KindStatsCards,
	KindStatsCharts,
	KindQuoteStandard,
	KindQuoteFeatured,
	KindBodyText,
	KindCaseStudyBodyText,
	KindImageShowcase,
	KindSingleImage,
	KindDualImage,
	KindSplitBackgroundImage,
	KindVideo,
	KindBentoGrid,
	KindCTA,
	KindLogoGrid,
	KindServicesSection,
	KindServicesGrid,
	KindAwardsGrid,
	KindBlogCarousel,
	KindScrollHijackCarousel,
	KindCarousel,
	KindPageHeader,
	KindTwoColumnText,
	KindAccordion,
	KindFAQSection,
}

// AllKinds lists every known kind in a stable order.
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

var kindsByFold = func() map[string]Kind {
	m := make(map[string]Kind, len(allKinds)+4)
	for _, k := range allKinds {
		m[foldKind(string(k))] = k
	}
	// Slugs older CMS schemas used.
	m[foldKind("company-intro")] = KindCompanyIntro
	m[foldKind("callToAction")] = KindCTA
	m[foldKind("faq")] = KindFAQSection
	m[foldKind("stats")] = KindStatsCards
	return m
}()

// ParseKind matches blockType exactly first, then ignoring case and
// separators so "stats-cards" and "StatsCards" resolve too.
func ParseKind(s string) Kind {
	s = strings.TrimSpace(s)
	for _, k := range allKinds {
		if string(k) == s {
			return k
		}
	}
	return kindsByFold[foldKind(s)]
}

func (k Kind) Known() bool { return k != KindUnknown }

// Class is the kebab-case CSS class for the kind, e.g. "block-stats-charts".
func (k Kind) Class() string {
	if k == KindUnknown {
		return "block-unknown"
	}
	var b strings.Builder
	b.WriteString("block-")
	for i, r := range string(k) {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func foldKind(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == '-' || r == '_' || r == ' ' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
