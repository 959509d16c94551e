// Package pipeline implements the post content pipeline.
//
// A post file goes through these stages:
//   - Preprocessing (UTF-8 BOM removal, line ending normalization)
//   - Front matter extraction (YAML or TOML) and field validation
//   - Markdown to HTML conversion via Goldmark: GFM, callout blocks,
//     raw HTML passthrough and chroma syntax highlighting
//   - Raw HTML merging: the fragment is re-parsed so injected markup
//     composes with the surrounding tree
//
// External link annotation is a separate post-processing step. Callers run
// AddExternalLinkIcons once per rendered post, right before display.
//
// Storage enumeration, sorting and pagination live in the root mdblog
// package. This package only turns one file's bytes into a Document.
package pipeline
