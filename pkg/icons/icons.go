// Package icons holds the inline SVG icons shared by commands.
package icons

import (
	_ "embed"

	"mercator-hq/callisto/pkg/envelope"
	"mercator-hq/callisto/pkg/format"
)

var (
	//go:embed assets/github.svg
	githubSVG string
	//go:embed assets/repo.svg
	repoSVG string
	//go:embed assets/package.svg
	packageSVG string
	//go:embed assets/npm.svg
	npmSVG string
	//go:embed assets/hacker-news.svg
	hackerNewsSVG string
	//go:embed assets/page.svg
	pageSVG string
	//go:embed assets/board.svg
	boardSVG string
	//go:embed assets/vercel.svg
	vercelSVG string
	//go:embed assets/unsplash.svg
	unsplashSVG string
)

// Icons are shared between responses and must not be modified.
var (
	GitHub     = format.SVGIcon(githubSVG)
	GitHubRepo = format.SVGIcon(repoSVG)
	Package    = format.SVGIcon(packageSVG)
	NPM        = format.SVGIcon(npmSVG)
	HackerNews = envelope.SVG(hackerNewsSVG)
	Page       = envelope.Mono(pageSVG)
	Board      = envelope.Mono(boardSVG)
	Vercel     = envelope.Mono(vercelSVG)
	Unsplash   = envelope.Mono(unsplashSVG)
)

// Favicon returns the favicon of host as an icon.
func Favicon(host string) *envelope.Icon {
	return envelope.URL("https://" + host + "/favicon.ico")
}
