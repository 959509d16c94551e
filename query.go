package mdblog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// GetAllPosts returns the metadata of every parseable post, newest first.
// Dates compare as strings; equal dates keep enumeration order.
func (r *Repository) GetAllPosts(ctx context.Context) ([]PostMetadata, error) {
	if r.cache != nil {
		if posts, ok := r.cache.get(); ok {
			return posts, nil
		}
	}

	// Generation is read before loading so a concurrent Invalidate
	// discards this result instead of being overwritten by it.
	var gen uint64
	if r.cache != nil {
		gen = r.cache.generation()
	}

	posts, err := r.loadMetadata(ctx)
	if err != nil {
		return nil, err
	}
	SortByDate(posts)

	if r.cache != nil {
		r.cache.set(gen, posts)
		return cloneListing(posts), nil
	}
	return posts, nil
}

// Search returns the posts whose title or description contains query,
// ignoring case, newest first. A blank query matches every post.
func (r *Repository) Search(ctx context.Context, query string) ([]PostMetadata, error) {
	posts, err := r.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPosts(posts, query), nil
}

// GetPaginatedPosts searches, sorts and slices the catalog. TotalPages counts
// the filtered posts. Pages past the end are empty, not an error.
func (r *Repository) GetPaginatedPosts(ctx context.Context, page, perPage int, query string) (Page, error) {
	if err := validatePage(page, perPage); err != nil {
		return Page{}, err
	}
	posts, err := r.Search(ctx, query)
	if err != nil {
		return Page{}, err
	}
	return Paginate(posts, page, perPage)
}

// SortByDate sorts posts by date, newest first. The sort is stable.
func SortByDate(posts []PostMetadata) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date > posts[j].Date
	})
}

// FilterPosts keeps the posts whose title or description contains query
// under Unicode case folding. Order is preserved and the input is not modified.
func FilterPosts(posts []PostMetadata, query string) []PostMetadata {
	query = strings.TrimSpace(query)
	if query == "" {
		return posts
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]PostMetadata, 0, len(posts))
	for _, p := range posts {
		if strings.Contains(fold.String(p.Title), needle) ||
			strings.Contains(fold.String(p.Description), needle) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns page number page of posts, perPage at a time.
// Pages start at 1. Returns ErrInvalidPage if page or perPage is below 1.
func Paginate(posts []PostMetadata, page, perPage int) (Page, error) {
	if err := validatePage(page, perPage); err != nil {
		return Page{}, err
	}

	total := len(posts)
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	result := Page{
		Posts:      []PostMetadata{},
		Number:     page,
		PerPage:    perPage,
		TotalPosts: total,
		TotalPages: totalPages,
	}
	if page > totalPages {
		return result, nil
	}

	start := (page - 1) * perPage
	end := start + min(perPage, total-start)
	result.Posts = posts[start:end]
	return result, nil
}

func validatePage(page, perPage int) error {
	if page < 1 {
		return fmt.Errorf("%w: page %d (pages start at 1)", ErrInvalidPage, page)
	}
	if perPage < 1 {
		return fmt.Errorf("%w: %d posts per page", ErrInvalidPage, perPage)
	}
	return nil
}
