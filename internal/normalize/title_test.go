package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	long := strings.Repeat("а", 150)

	testCases := []struct {
		name     string
		subject  string
		comment  string
		expected string
	}{
		{name: "subject wins", subject: "Двач тред", comment: "какой-то текст", expected: "Двач тред"},
		{name: "subject is trimmed", subject: "  Тред  ", expected: "Тред"},
		{name: "short comment", comment: "Привет, анон", expected: "Привет, анон"},
		{name: "tags stripped", comment: `<b>Жирный</b> и <span class="spoiler">спойлер</span><br>конец`, expected: "Жирный и спойлерконец"},
		{name: "entities unescaped", comment: "Tom &amp; Jerry &quot;quoted&quot;", expected: `Tom & Jerry "quoted"`},
		{name: "long comment truncated", comment: long, expected: strings.Repeat("а", 100) + "..."},
		{name: "exactly one hundred is not truncated", comment: strings.Repeat("b", 100), expected: strings.Repeat("b", 100)},
		{name: "tags do not count towards limit", comment: "<p>" + strings.Repeat("x", 100) + "</p>", expected: strings.Repeat("x", 100)},
		{name: "neither", expected: DefaultTitle},
		{name: "whitespace subject and markup-only comment", subject: "   ", comment: "<br><br>", expected: DefaultTitle},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Title(tc.subject, tc.comment))
		})
	}
}

func TestTitle_TruncatesByCharacterNotByte(t *testing.T) {
	title := Title("", strings.Repeat("ё", 101))

	assert.True(t, utf8.ValidString(title))
	assert.Equal(t, 103, utf8.RuneCountInString(title))
	assert.True(t, strings.HasSuffix(title, "..."))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "a b", StripTags(`<a href="/b/res/1.html">a</a> b`))
	assert.Equal(t, "", StripTags(`<script>alert(1)</script>`))
}
