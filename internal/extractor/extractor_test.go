package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_UnsupportedFormat(t *testing.T) {
	for _, filename := range []string{"cv.exe", "cv.png", "cv", "cv.PDF.bak"} {
		t.Run(filename, func(t *testing.T) {
			_, err := Extract(filename, []byte("data"))
			require.ErrorIs(t, err, ErrUnsupportedFormat)
		})
	}
}

func TestExtract_Text(t *testing.T) {
	text, err := Extract("Jane Doe.txt", []byte("Senior Go engineer.\nTen years of experience."))
	require.NoError(t, err)
	assert.Equal(t, "Senior Go engineer.\nTen years of experience.", text)
}

func TestExtract_ExtensionCaseInsensitive(t *testing.T) {
	text, err := Extract("Jane Doe.TXT", []byte("content"))
	require.NoError(t, err)
	assert.Equal(t, "content", text)
}

func TestExtract_CorruptPDF(t *testing.T) {
	_, err := Extract("broken.pdf", []byte("not a pdf at all"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtract_CorruptDOCX(t *testing.T) {
	_, err := Extract("broken.docx", []byte("not a zip archive"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJoinPages(t *testing.T) {
	assert.Equal(t, "", joinPages(nil))
	assert.Equal(t, "one page", joinPages([]string{"one page"}))
	assert.Equal(t, "first\nsecond", joinPages([]string{"first", "second"}))

	// An empty (scanned/null) page contributes an empty string between
	// separators; a leading empty page must not double the first one.
	assert.Equal(t, "\nsecond", joinPages([]string{"", "second"}))
	assert.Equal(t, "first\n\nthird", joinPages([]string{"first", "", "third"}))
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t, []string{".pdf", ".docx", ".txt", ".xlsx", ".ods"}, SupportedExtensions)
}
