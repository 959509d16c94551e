package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/yamlutil"
)

// runIDs prints every post id, one per line, in storage order.
func runIDs(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommonFlags("ids", args, env.Stdout, printIDsUsage)
	if err != nil {
		return err
	}
	if err := requireNoArgs("ids", positional); err != nil {
		return err
	}

	s, err := newSession(flags, env)
	if err != nil {
		return err
	}
	repo, err := s.repository()
	if err != nil {
		return err
	}

	ids, err := repo.GetAllPostIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(env.Stdout, id)
	}
	return nil
}

// runList prints one page of post metadata.
func runList(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseListFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := requireNoArgs("list", positional); err != nil {
		return err
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	repo, err := s.repository()
	if err != nil {
		return err
	}

	perPage := flags.perPage
	if perPage == 0 {
		perPage = s.cfg.Pagination.PerPage
	}
	page, err := repo.GetPaginatedPosts(ctx, flags.page, perPage, flags.query)
	if err != nil {
		return err
	}

	switch {
	case flags.json:
		return writeJSON(env.Stdout, page)
	case flags.yaml:
		return writeYAML(env.Stdout, page)
	default:
		return printPage(env.Stdout, page)
	}
}

// runShow prints one rendered post.
func runShow(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseShowFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: show takes exactly one post id", ErrUsage)
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	repo, err := s.repository()
	if err != nil {
		return err
	}

	post, err := repo.GetPostData(ctx, positional[0])
	if err != nil {
		return err
	}

	if flags.markdown {
		_, err = io.WriteString(env.Stdout, post.Markdown)
		return err
	}
	content := post.Content
	if s.cfg.Links.ExternalIcons && !flags.noLinkIcons {
		content = mdblog.AddExternalLinkIcons(content)
	}
	_, err = io.WriteString(env.Stdout, content)
	return err
}

// printPage writes a page as an aligned table followed by a page footer.
func printPage(w io.Writer, page mdblog.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range page.Posts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Date, p.ID, p.Title)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	switch {
	case page.TotalPosts == 0:
		fmt.Fprintln(w, "no posts")
	case len(page.Posts) == 0:
		fmt.Fprintf(w, "page %d is past the end (%d pages)\n", page.Number, page.TotalPages)
	default:
		fmt.Fprintf(w, "page %d of %d (%d posts)\n", page.Number, page.TotalPages, page.TotalPosts)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	data, err := yamlutil.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
