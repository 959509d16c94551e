package mdblog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdblog/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PostPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Repository reads posts from a content root and answers listing queries.
// It is safe for concurrent use.
type Repository struct {
	fsys    fs.FS
	root    string // OS directory backing fsys; empty for NewRepositoryFS
	pattern string
	workers int
	logger  zerolog.Logger
	cache   *metadataCache // nil when caching is off

	frontMatterOpts []pipeline.FrontMatterOption
	converterOpts   pipeline.ConverterOptions
	converter       pipeline.HTMLConverter
	renderer        *pipeline.Renderer
}

// entry is one post file found under the content root.
type entry struct {
	id   string
	path string // slash-separated, relative to the root
}

// NewRepository returns a Repository over the posts in dir.
// Returns ErrContentDir if dir is not a readable directory.
func NewRepository(dir string, opts ...Option) (*Repository, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrContentDir, dir)
	}

	r, err := newRepository(os.DirFS(dir), opts...)
	if err != nil {
		return nil, err
	}
	r.root = dir
	return r, nil
}

// NewRepositoryFS returns a Repository over the posts in fsys.
// Useful for embedded content and tests; such a repository cannot Watch.
func NewRepositoryFS(fsys fs.FS, opts ...Option) (*Repository, error) {
	return newRepository(fsys, opts...)
}

func newRepository(fsys fs.FS, opts ...Option) (*Repository, error) {
	r := &Repository{
		fsys:    fsys,
		pattern: DefaultPattern,
		workers: DefaultWorkers,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if !doublestar.ValidatePattern(r.pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, r.pattern)
	}

	fm, err := pipeline.NewFrontMatterParser(r.frontMatterOpts...)
	if err != nil {
		return nil, fmt.Errorf("configuring front matter: %w", err)
	}
	if r.converter == nil {
		r.converter = pipeline.NewGoldmarkConverter(r.converterOpts)
	}
	r.renderer = pipeline.NewRenderer(fm, r.converter)

	return r, nil
}

// GetAllPostIDs returns every post id in storage enumeration order
// (lexical by path). No date sorting is applied.
func (r *Repository) GetAllPostIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.id
	}
	return ids, nil
}

// GetPostData loads and fully renders one post.
// Returns ErrNotFound if no post has this id.
func (r *Repository) GetPostData(ctx context.Context, id string) (*Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(r.fsys, e.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
		}
		return nil, fmt.Errorf("reading post %q: %w", id, err)
	}

	doc, err := r.renderer.Render(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("rendering post %q: %w", id, err)
	}

	return &Post{
		PostMetadata: toMetadata(id, doc.FrontMatter),
		Markdown:     doc.Markdown,
		Content:      doc.HTML,
	}, nil
}

// Invalidate drops cached metadata. No-op without WithMetadataCache.
func (r *Repository) Invalidate() {
	if r.cache != nil {
		r.cache.invalidate()
	}
}

// entries enumerates post files. Ids are unique: when two files share a base
// name, the first in enumeration order wins and the other is logged.
func (r *Repository) entries() ([]entry, error) {
	matches, err := doublestar.Glob(r.fsys, r.pattern,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentDir, err)
	}

	seen := make(map[string]string, len(matches))
	out := make([]entry, 0, len(matches))
	for _, p := range matches {
		id := postID(p)
		if kept, dup := seen[id]; dup {
			r.logger.Warn().Str("id", id).Str("path", p).Str("kept", kept).Msg("duplicate post id, skipping file")
			continue
		}
		seen[id] = p
		out = append(out, entry{id: id, path: p})
	}
	return out, nil
}

func (r *Repository) lookup(id string) (entry, error) {
	entries, err := r.entries()
	if err != nil {
		return entry{}, err
	}
	for _, e := range entries {
		if e.id == id {
			return e, nil
		}
	}
	return entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// loadMetadata parses the front matter of every post, concurrently.
// Posts that fail to parse are logged and left out. Results keep
// enumeration order.
func (r *Repository) loadMetadata(ctx context.Context) ([]PostMetadata, error) {
	entries, err := r.entries()
	if err != nil {
		return nil, err
	}

	results := make([]*PostMetadata, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, e := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			meta, err := r.readMetadata(gctx, e)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				r.logger.Warn().Err(err).Str("id", e.id).Str("path", e.path).Msg("skipping post")
				return nil
			}
			results[i] = meta
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	posts := make([]PostMetadata, 0, len(results))
	for _, m := range results {
		if m != nil {
			posts = append(posts, *m)
		}
	}
	return posts, nil
}

func (r *Repository) readMetadata(ctx context.Context, e entry) (*PostMetadata, error) {
	data, err := fs.ReadFile(r.fsys, e.path)
	if err != nil {
		return nil, err
	}
	fm, _, err := r.renderer.Metadata(ctx, data)
	if err != nil {
		return nil, err
	}
	meta := toMetadata(e.id, fm)
	return &meta, nil
}

func toMetadata(id string, fm pipeline.FrontMatter) PostMetadata {
	return PostMetadata{
		ID:          id,
		Title:       fm.Title,
		Date:        fm.Date,
		Description: fm.Description,
		Params:      fm.Params,
	}
}

// postID derives the id from a file path: the base name without extension.
func postID(p string) string {
	name := path.Base(p)
	return strings.TrimSuffix(name, path.Ext(name))
}

// validID rejects ids that could escape the content root.
func validID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, "/\\\x00")
}
