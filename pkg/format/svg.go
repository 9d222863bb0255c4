package format

import (
	"regexp"

	"mercator-hq/callisto/pkg/envelope"
)

var fillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`fill="(#\w+)"`),
	regexp.MustCompile(`fill:(#\w+)`),
}

// Colors returns the distinct fill colors referenced by an SVG body.
func Colors(svg string) map[string]struct{} {
	colors := make(map[string]struct{})
	for _, re := range fillPatterns {
		for _, m := range re.FindAllStringSubmatch(svg, -1) {
			colors[m[1]] = struct{}{}
		}
	}
	return colors
}

// IsMonochrome reports whether svg uses fewer than two fill colors and can
// therefore be recolored by the launcher.
func IsMonochrome(svg string) bool {
	return len(Colors(svg)) < 2
}

// SVGIcon wraps svg as an icon, marking it monochrome when it qualifies.
func SVGIcon(svg string) *envelope.Icon {
	if IsMonochrome(svg) {
		return envelope.Mono(svg)
	}
	return envelope.SVG(svg)
}
