package main

import (
	"context"

	mdblog "github.com/alnah/go-mdblog"
)

// runWatch keeps a cached repository and reports each reload until
// interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCommonFlags("watch", args, env.Stdout, printWatchUsage)
	if err != nil {
		return err
	}
	if err := requireNoArgs("watch", positional); err != nil {
		return err
	}

	s, err := newSession(flags, env)
	if err != nil {
		return err
	}
	repo, err := s.repository(mdblog.WithMetadataCache())
	if err != nil {
		return err
	}

	reload := func() {
		posts, err := repo.GetAllPosts(ctx)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Error().Err(err).Msg("reload failed")
			}
			return
		}
		s.logger.Info().Int("posts", len(posts)).Msg("content reloaded")
	}

	reload()
	return repo.Watch(ctx, reload)
}
