package shindan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFormData(t *testing.T) {
	doc, _ := mustParseFixture(t, shindanPageFixture)

	form, err := extractFormData(doc, "test_user")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"_token":             "fixture-csrf-token-3f9c2b71",
		"randname":           "0",
		"type":               "name",
		"user_input_value_1": "test_user",
	}, form)
}

func TestExtractFormDataParts(t *testing.T) {
	doc, _ := mustParseFixture(t, shindanPagePartsFixture)

	form, err := extractFormData(doc, "test_user")
	require.NoError(t, err)

	// multi-part shindans receive the input once per part
	require.Equal(t, "test_user", form["parts[1]"])
	require.Equal(t, "test_user", form["parts[2]"])
	require.Equal(t, "test_user", form["user_input_value_1"])
	require.Equal(t, "fixture-csrf-token-77aa01fe", form["_token"])
}

func TestExtractFormDataMissingToken(t *testing.T) {
	doc, _ := mustParseFixture(t, shindanPageNoTokenFixture)

	_, err := extractFormData(doc, "test_user")
	require.ErrorIs(t, err, ErrTokenNotFound)
}
