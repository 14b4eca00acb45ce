package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/mondrian/pkg/core/composition"
	"github.com/matzehuels/mondrian/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, c composition.Composition, formats []string, opts sink.Options) (map[string][]byte, error) {
	sinks := make([]sink.Sink, 0, len(formats))
	for _, f := range formats {
		format, err := sink.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		s, err := sink.New(format, opts)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(sinks))
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, s := range sinks {
		g.Go(func() error {
			data, err := s.Render(ctx, c)
			if err != nil {
				return fmt.Errorf("render %s: %w", s.Format(), err)
			}
			mu.Lock()
			artifacts[string(s.Format())] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
