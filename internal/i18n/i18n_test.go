package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranslations(t *testing.T) {
	t.Run("Should load bundled languages", func(t *testing.T) {
		trans, err := NewTranslations("en")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"en", "ko"}, trans.Languages())
	})

	t.Run("Should fail with invalid language", func(t *testing.T) {
		trans, err := NewTranslations("not a language!")
		assert.Error(t, err)
		assert.Nil(t, trans)
	})

	t.Run("Should fall back to English for unbundled languages", func(t *testing.T) {
		trans, err := NewTranslations("fr")
		require.NoError(t, err)
		assert.Contains(t, trans.Message("greeting", nil), "Good morning!")
	})
}

func TestMessage(t *testing.T) {
	en, err := NewTranslations("en")
	require.NoError(t, err)
	ko, err := NewTranslations("ko")
	require.NoError(t, err)

	assert.Equal(t,
		"👋👋 Good morning!\nThere are pull requests from teammates eagerly waiting for review. Please take a look:",
		en.Message("greeting", nil))
	assert.Equal(t,
		"👋👋 좋은 아침입니다!\n리뷰를 애타게 기다리는 동료의 PR이 있어요. 리뷰에 참여해 주세요:",
		ko.Message("greeting", nil))
	assert.Equal(t, "☝️ 긴급 PR입니다. 지금 바로 리뷰에 참여해 주세요!🚨", ko.Message("urgent_call_to_action", nil))
	assert.Equal(t, "Translation missing: nope", en.Message("nope", nil))
}

func TestPlural(t *testing.T) {
	en, err := NewTranslations("en")
	require.NoError(t, err)

	assert.Equal(t, "1 pull request waiting for review", en.Plural("summary", 1))
	assert.Equal(t, "3 pull requests waiting for review", en.Plural("summary", 3))
}

func TestSetLanguage(t *testing.T) {
	trans, err := NewTranslations("en")
	require.NoError(t, err)

	t.Run("Should change to a bundled language", func(t *testing.T) {
		require.NoError(t, trans.SetLanguage("ko"))
		assert.Contains(t, trans.Message("greeting", nil), "좋은 아침입니다")
	})

	t.Run("Should fail with unsupported language", func(t *testing.T) {
		assert.Error(t, trans.SetLanguage("xx"))
	})
}
