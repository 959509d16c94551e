package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/sync/errgroup"

	mdblog "github.com/alnah/go-mdblog"
	"github.com/alnah/go-mdblog/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Output file names written next to the post fragments.
const (
	indexFileName = "index.json"
	cssFileName   = "chroma.css"
)

// runBuild renders every post into an output directory:
// one <id>.html fragment per post, index.json with the sorted metadata and,
// with --css, the highlight stylesheet.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if err := requireNoArgs("build", positional); err != nil {
		return err
	}
	if flags.output == "" {
		return fmt.Errorf("%w: build requires --output", ErrUsage)
	}
	if flags.workers < 0 {
		return fmt.Errorf("%w: --workers must be positive", ErrUsage)
	}

	s, err := newSession(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.css {
		s.cfg.Markdown.HighlightClasses = true
	}
	workers := s.cfg.Workers
	if flags.workers > 0 {
		workers = flags.workers
	}

	repo, err := s.repository()
	if err != nil {
		return err
	}

	start := time.Now()
	posts, err := repo.GetAllPosts(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(flags.output, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, meta := range posts {
		g.Go(func() error {
			return writePost(gctx, repo, meta.ID, flags.output, s.cfg.Links.ExternalIcons)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeIndex(flags.output, posts); err != nil {
		return err
	}
	if flags.css {
		if err := writeStylesheet(flags.output, s.cfg.Markdown.HighlightStyle); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("posts", len(posts)).
		Str("output", flags.output).
		Dur("took", time.Since(start)).
		Msg("build complete")
	return nil
}

// writePost renders one post and writes its HTML fragment.
func writePost(ctx context.Context, repo *mdblog.Repository, id, dir string, icons bool) error {
	name := id + ".html"
	if err := fileutil.ValidateFileName(name); err != nil {
		return fmt.Errorf("%w: post %q: %v", ErrWriteOutput, id, err)
	}

	post, err := repo.GetPostData(ctx, id)
	if err != nil {
		return err
	}
	content := post.Content
	if icons {
		content = mdblog.AddExternalLinkIcons(content)
	}

	if err := fileutil.WriteFileAtomic(filepath.Join(dir, name), []byte(content), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// writeIndex writes the sorted metadata listing as JSON.
func writeIndex(dir string, posts []mdblog.PostMetadata) error {
	var buf bytes.Buffer
	if err := writeJSON(&buf, posts); err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, indexFileName), buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// writeStylesheet writes the CSS matching class-based highlighting.
func writeStylesheet(dir, style string) error {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return fmt.Errorf("generating stylesheet: %w", err)
	}
	if err := fileutil.WriteFileAtomic(filepath.Join(dir, cssFileName), buf.Bytes(), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
