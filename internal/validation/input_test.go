package validation

import (
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSkills(t *testing.T) {
	skills, err := NormalizeSkills([]string{" writing ", "", "Go", "go", "  ", "SEO"})
	require.NoError(t, err)
	assert.Equal(t, []string{"writing", "Go", "SEO"}, skills)
}

func TestNormalizeSkills_TooLong(t *testing.T) {
	_, err := NormalizeSkills([]string{strings.Repeat("a", MaxSkillLength+1)})
	assert.Error(t, err)
}

func TestSplitSkills(t *testing.T) {
	assert.Nil(t, SplitSkills("  "))
	assert.Equal(t, []string{"writing", " editing"}, SplitSkills("writing, editing"))
}

func TestRequiredText(t *testing.T) {
	v, err := RequiredText("заголовок", "  Landing page  ", 200)
	require.NoError(t, err)
	assert.Equal(t, "Landing page", v)

	_, err = RequiredText("заголовок", "   ", 200)
	assert.Error(t, err)

	_, err = RequiredText("заголовок", "abcdef", 3)
	assert.Error(t, err)
}

func TestNotBlankTag(t *testing.T) {
	require.NoError(t, RegisterBindingValidators())
	require.NoError(t, RegisterBindingValidators())

	type payload struct {
		Body string `binding:"notblank"`
	}
	assert.NoError(t, binding.Validator.ValidateStruct(payload{Body: " ok "}))
	assert.Error(t, binding.Validator.ValidateStruct(payload{Body: "   "}))
}
