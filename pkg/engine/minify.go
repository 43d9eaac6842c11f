package engine

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

var (
	minifierOnce sync.Once
	minifier     *minify.M
)

func htmlMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.AddFunc("text/html", html.Minify)
	})
	return minifier
}

// minifyHTML compacts rendered HTML, falling back to the original output when
// minification fails.
func minifyHTML(rendered string) string {
	minified, err := htmlMinifier().String("text/html", rendered)
	if err != nil {
		return rendered
	}
	return minified
}
