package form

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// CheckAll loads and validates many definition files concurrently,
// reporting the first failure. Used by the check command so large form
// libraries validate quickly.
func CheckAll(ctx context.Context, paths []string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		p := path
		g.Go(func() error {
			if _, err := Load(p); err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			return nil
		})
	}
	return g.Wait()
}
