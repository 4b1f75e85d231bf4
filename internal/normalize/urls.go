package normalize

import (
	"path"
	"strings"
)

// URLBuilder derives media URLs from a board id and an upstream file name.
type URLBuilder struct {
	base string
}

func NewURLBuilder(base string) URLBuilder {
	return URLBuilder{base: strings.TrimRight(base, "/")}
}

// Image is {base}/{board}/{file}.
func (b URLBuilder) Image(board, file string) string {
	return b.base + "/" + board + "/" + file
}

// Thumbnail is {base}/{board}/thumb/{name}_thumb{.ext}.
func (b URLBuilder) Thumbnail(board, file string) string {
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)
	return b.base + "/" + board + "/thumb/" + name + "_thumb" + ext
}
