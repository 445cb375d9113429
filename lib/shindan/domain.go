package shindan

import (
	"fmt"
	"strings"
)

// Domain identifies a locale-specific deployment of ShindanMaker.
// Each deployment has its own base URL and its own markup quirks.
type Domain int

const (
	DomainJp Domain = iota
	DomainEn
	DomainCn
	DomainKr
	DomainTh
)

func (d Domain) String() string {
	switch d {
	case DomainJp:
		return "jp"
	case DomainEn:
		return "en"
	case DomainCn:
		return "cn"
	case DomainKr:
		return "kr"
	case DomainTh:
		return "th"
	}
	return fmt.Sprintf("Domain(%d)", int(d))
}

func (d Domain) BaseURL() string {
	switch d {
	case DomainEn:
		return "https://en.shindanmaker.com/"
	case DomainCn:
		return "https://cn.shindanmaker.com/"
	case DomainKr:
		return "https://kr.shindanmaker.com/"
	case DomainTh:
		return "https://th.shindanmaker.com/"
	}
	return "https://shindanmaker.com/"
}

// resultMarker is the selector whose presence distinguishes a result
// page from the input form being served back after a rejected
// submission. The service answers 200 in both cases, so status codes
// alone cannot tell them apart. Kept per-domain since the deployments
// update their markup independently.
func (d Domain) resultMarker() string {
	return "#shindanResult"
}

var domainAliases = map[string]Domain{
	"jp":       DomainJp,
	"japan":    DomainJp,
	"en":       DomainEn,
	"english":  DomainEn,
	"cn":       DomainCn,
	"china":    DomainCn,
	"kr":       DomainKr,
	"korea":    DomainKr,
	"th":       DomainTh,
	"thailand": DomainTh,
}

// ParseDomain resolves a locale string ("jp", "English", " KR ", ...)
// to a Domain. Matching is case-insensitive and ignores surrounding
// whitespace.
func ParseDomain(locale string) (Domain, error) {
	alias := strings.ToLower(strings.Trim(locale, " \t\n"))
	domain, ok := domainAliases[alias]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, locale)
	}
	return domain, nil
}
