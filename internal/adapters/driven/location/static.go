package location

import (
	"context"

	"github.com/custodia-labs/wayfinder-cli/internal/core/domain"
	"github.com/custodia-labs/wayfinder-cli/internal/core/ports/driven"
)

// Ensure StaticSource implements the interface.
var _ driven.LocationSource = (*StaticSource)(nil)

// StaticSource always reports the same position.
type StaticSource struct {
	coord domain.Coordinate
}

// NewStaticSource creates a source fixed at coord.
func NewStaticSource(coord domain.Coordinate) *StaticSource {
	return &StaticSource{coord: coord}
}

// Current returns the fixed position.
func (s *StaticSource) Current(ctx context.Context) (domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinate{}, err
	}
	return s.coord, nil
}

// Watch emits the fixed position once and closes when ctx is done.
func (s *StaticSource) Watch(ctx context.Context) (<-chan domain.Coordinate, error) {
	fixes := make(chan domain.Coordinate, 1)
	fixes <- s.coord
	go func() {
		<-ctx.Done()
		close(fixes)
	}()
	return fixes, nil
}
