package utils_test

import (
	"testing"

	"github.com/robalyx/headline/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestTextNormalizer(t *testing.T) {
	t.Parallel()

	n := utils.NewTextNormalizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Hello World", want: "hello world"},
		{name: "strips accents", input: "Café Crème", want: "cafe creme"},
		{name: "folds compatibility forms", input: "ｆｕｌｌｗｉｄｔｈ", want: "fullwidth"},
		{name: "compresses spaces", input: "  a   b  ", want: "a b"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestTagName(t *testing.T) {
	t.Parallel()

	n := utils.NewTextNormalizer()
	assert.Equal(t, "open-source", n.TagName("  Open   Source "))
	assert.Equal(t, "resume", n.TagName("Résumé"))
	assert.Equal(t, "go", n.TagName("GO\n"))
	assert.Empty(t, n.TagName(" \t "))
}

func TestSimilar(t *testing.T) {
	t.Parallel()

	n := utils.NewTextNormalizer()
	assert.True(t, n.Similar("This is a great article about Go", "this is a GREAT article about go, thanks"))
	assert.True(t, n.Similar("Nice", "nice"))
	assert.False(t, n.Similar("ok", "look at this link instead"))
	assert.False(t, n.Similar("Great article", "Terrible title"))
	assert.False(t, n.Similar("", "anything"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "héll", utils.Truncate("héllo", 4))
	assert.Equal(t, "hi", utils.Truncate("hi", 10))
	assert.Empty(t, utils.Truncate("hi", 0))
}
