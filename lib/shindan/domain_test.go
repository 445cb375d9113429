package shindan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDomain(t *testing.T) {
	cases := map[string]Domain{
		"jp":       DomainJp,
		"Jp":       DomainJp,
		"JP":       DomainJp,
		"japan":    DomainJp,
		"en":       DomainEn,
		"EN":       DomainEn,
		"English":  DomainEn,
		" en ":     DomainEn,
		"cn":       DomainCn,
		"China":    DomainCn,
		"kr":       DomainKr,
		"korea":    DomainKr,
		"th":       DomainTh,
		"THAILAND": DomainTh,
	}
	for locale, want := range cases {
		got, err := ParseDomain(locale)
		require.NoError(t, err, "locale %q", locale)
		require.Equal(t, want, got, "locale %q", locale)
	}
}

func TestParseDomainUnknown(t *testing.T) {
	for _, locale := range []string{"", "de", "us", "shindanmaker.com", "jp en"} {
		_, err := ParseDomain(locale)
		require.ErrorIs(t, err, ErrUnknownDomain, "locale %q", locale)
	}
}

func TestDomainBaseURL(t *testing.T) {
	require.Equal(t, "https://shindanmaker.com/", DomainJp.BaseURL())
	require.Equal(t, "https://en.shindanmaker.com/", DomainEn.BaseURL())
	require.Equal(t, "https://cn.shindanmaker.com/", DomainCn.BaseURL())
	require.Equal(t, "https://kr.shindanmaker.com/", DomainKr.BaseURL())
	require.Equal(t, "https://th.shindanmaker.com/", DomainTh.BaseURL())
}
