package mdblog

import "github.com/alnah/go-mdblog/internal/pipeline"

// AddExternalLinkIcons decorates anchors pointing off-site with an icon and
// an alignment class. Hrefs starting with "/", relative or malformed URLs
// and mailto links are left alone. Already decorated anchors are skipped,
// so calling it twice on the same HTML is harmless.
func AddExternalLinkIcons(htmlContent string) string {
	return pipeline.AddExternalLinkIcons(htmlContent)
}
