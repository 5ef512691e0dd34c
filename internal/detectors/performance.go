package detectors

import (
	"regexp"
	"strings"

	"github.com/codemend/codemend/internal/types"
)

var reDeepClone = regexp.MustCompile(`JSON\.parse\(\s*JSON\.stringify\(([^()]*)\)\s*\)`)

// DeepClone flags the JSON round-trip clone idiom and rewrites it to
// structuredClone. Only simple argument expressions (no nested parens) are
// matched so the span rewrite stays exact.
func DeepClone(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		for _, loc := range reDeepClone.FindAllStringSubmatchIndex(t, -1) {
			out = append(out, types.Finding{
				Path:        path,
				Line:        n,
				Detector:    "perf_deep_clone",
				Category:    types.CatPerformance,
				Description: "JSON round-trip clone; structuredClone is faster and preserves more types",
				Confidence:  0.85,
				Fix: &types.Fix{
					Original:    t[loc[0]:loc[1]],
					Replacement: "structuredClone(" + strings.TrimSpace(t[loc[2]:loc[3]]) + ")",
					Col:         loc[0] + 1,
				},
			})
		}
	})
	return out
}

var reImgTag = regexp.MustCompile(`<img\b([^>]*?)/?>`)

// ImgWithoutLazyLoading flags img tags without a loading attribute and adds
// loading="lazy".
func ImgWithoutLazyLoading(path string, data []byte) []types.Finding {
	var out []types.Finding
	EachLine(data, func(n int, t string) {
		for _, loc := range reImgTag.FindAllStringSubmatchIndex(t, -1) {
			attrs := t[loc[2]:loc[3]]
			if strings.Contains(attrs, "loading=") {
				continue
			}
			out = append(out, types.Finding{
				Path:        path,
				Line:        n,
				Detector:    "perf_img_loading",
				Category:    types.CatPerformance,
				Description: "img without a loading attribute; off-screen images block first paint",
				Confidence:  0.75,
				Fix: &types.Fix{
					Original:    "<img" + attrs,
					Replacement: `<img loading="lazy"` + attrs,
					Col:         loc[0] + 1,
				},
			})
		}
	})
	return out
}
