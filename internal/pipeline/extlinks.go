package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Classes added by AddExternalLinkIcons.
const (
	ExternalLinkClass = "inline-flex items-center"
	ExternalIconClass = "inline-block ml-1 -mt-1"
)

// externalLinkIcon is the "arrow out of box" icon appended to external links.
const externalLinkIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="14" height="14" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" class="` + ExternalIconClass + `"><path d="M18 13v6a2 2 0 0 1-2 2H5a2 2 0 0 1-2-2V8a2 2 0 0 1 2-2h6"></path><polyline points="15 3 21 3 21 9"></polyline><line x1="10" y1="14" x2="21" y2="3"></line></svg>`

// AddExternalLinkIcons appends an icon to every anchor pointing off-site and
// adds ExternalLinkClass to it for alignment.
//
// An anchor is left alone when its href starts with "/", does not parse as
// an absolute URL, uses the mailto scheme, or already ends with the icon.
// The last rule makes repeated calls safe. Input without any anchor to
// annotate is returned unchanged, byte for byte.
func AddExternalLinkIcons(htmlContent string) string {
	if !strings.Contains(strings.ToLower(htmlContent), "<a") {
		return htmlContent
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return htmlContent
	}

	changed := false
	for _, a := range findElements(doc, atom.A) {
		if !isExternalLink(a) || hasExternalIcon(a) {
			continue
		}
		if annotateLink(a) {
			changed = true
		}
	}
	if !changed {
		return htmlContent
	}

	out, err := renderHTML(doc, isFragment)
	if err != nil {
		return htmlContent
	}
	return out
}

// isExternalLink reports whether the anchor's href leaves the site.
// Malformed URLs count as internal.
func isExternalLink(a *html.Node) bool {
	href, ok := getAttr(a, "href")
	if !ok || strings.HasPrefix(href, "/") {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil || !u.IsAbs() {
		return false
	}
	return !strings.EqualFold(u.Scheme, "mailto")
}

// hasExternalIcon reports whether the anchor's last element child is the icon.
func hasExternalIcon(a *html.Node) bool {
	for c := a.LastChild; c != nil; c = c.PrevSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		if c.Type != html.ElementNode || c.Data != "svg" {
			return false
		}
		class, _ := getAttr(c, "class")
		return class == ExternalIconClass
	}
	return false
}

func annotateLink(a *html.Node) bool {
	icon, err := html.ParseFragment(strings.NewReader(externalLinkIcon), a)
	if err != nil || len(icon) == 0 {
		return false
	}

	addClass(a, ExternalLinkClass)
	for _, n := range icon {
		a.AppendChild(n)
	}
	return true
}

// addClass appends class to the element's class attribute.
func addClass(n *html.Node, class string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == "class" {
			n.Attr[i].Val = strings.TrimSpace(n.Attr[i].Val + " " + class)
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: class})
}
