package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-mdblog/internal/config"
)

// runStyles lists the highlight styles accepted by markdown.highlightStyle.
func runStyles(env *Environment) {
	for _, name := range styles.Names() {
		marker := ""
		if strings.EqualFold(name, config.DefaultHighlightStyle) {
			marker = " (default)"
		}
		fmt.Fprintf(env.Stdout, "%s%s\n", name, marker)
	}
}
