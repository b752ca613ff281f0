package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/lifeflow/core/internal/adapters/memory"
	"github.com/lifeflow/core/internal/application/version"
	"github.com/lifeflow/core/internal/infrastructure/logger"
)

type failingOpen struct {
	*memory.Gateway
}

func (failingOpen) Open(context.Context) error {
	return errors.New("disk full")
}

func TestVersionMarkedBeforeOpen(t *testing.T) {
	is := is.New(t)
	ctx := context.Background()
	meta := memory.NewMetaStore()

	changed, err := prepareStore(ctx, failingOpen{memory.NewGateway()}, meta, logger.NewNop())
	is.True(err != nil)
	is.True(changed)

	seen, ok, err := meta.Get(ctx, version.Key)
	is.NoErr(err)
	is.True(ok) // recorded although open failed
	is.Equal(seen, version.Current)

	changed, err = prepareStore(ctx, memory.NewGateway(), meta, logger.NewNop())
	is.NoErr(err)
	is.True(!changed)
}
