// Package mdblog turns a directory of Markdown posts into rendered HTML and
// sorted, searchable, paginated listings.
//
// # Quick Start
//
// Open a repository over a content directory and query it:
//
//	repo, err := mdblog.NewRepository("posts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := repo.GetPaginatedPosts(ctx, 1, 10, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range page.Posts {
//	    fmt.Println(p.Date, p.Title)
//	}
//
//	post, err := repo.GetPostData(ctx, "hello-world")
//	if errors.Is(err, mdblog.ErrNotFound) {
//	    // 404
//	}
//	html := mdblog.AddExternalLinkIcons(post.Content)
//
// # Post Files
//
// Each post is one file whose base name, without extension, is the post id.
// The file starts with a YAML ("---") or TOML ("+++") front matter block
// holding title, date and description. Any other key is kept in Params.
// Dates sort as strings, so use ISO dates ("2024-01-31").
//
// # Rendering Pipeline
//
// GetPostData runs these stages in order:
//
//  1. Line ending and BOM normalization
//  2. Front matter extraction and validation
//  3. Markdown parsing with GFM (tables, strikethrough, autolinks)
//  4. Callout rewriting: a paragraph holding ":::info", "body" and ":::"
//     lines becomes <div class="callout callout-info">body</div>
//     (types: info, warn, error)
//  5. HTML rendering with raw HTML passthrough and chroma highlighting
//  6. Re-parsing of the result so raw fragments merge into one tree
//
// External link decoration is separate: call AddExternalLinkIcons on the
// rendered content right before display.
//
// # Configuration
//
// Use functional options to customize the repository:
//
//	repo, err := mdblog.NewRepository("content",
//	    mdblog.WithPattern("**/*.md"),
//	    mdblog.WithMetadataCache(),
//	    mdblog.WithHighlighting("monokai", true, false),
//	    mdblog.WithLogger(logger),
//	)
//
// # Caching and Watching
//
// By default every query re-reads storage. WithMetadataCache keeps the
// sorted listing in memory; call Invalidate, or run Watch in a goroutine to
// invalidate on file changes.
//
// # Error Handling
//
// The package defines sentinel errors for common failures:
//
//	if errors.Is(err, mdblog.ErrNotFound) {
//	    // unknown post id
//	}
//	if errors.Is(err, mdblog.ErrMalformedFrontMatter) {
//	    // missing or invalid front matter block
//	}
//
// A post that fails to parse is logged and skipped by listings; it does not
// fail the listing.
package mdblog
