package site

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/cms/snapshot"
)

var errEmptyGlobal = errors.New("cms returned an empty document")

// loadGlobal fetches a site-wide document. A usable result refreshes the
// snapshot; otherwise the snapshot is tried, then the static fallback.
func loadGlobal[T any](
	ctx context.Context,
	a *Assembler,
	d *degradations,
	key string,
	fetch func(context.Context) (T, error),
	usable func(T) bool,
	static func() T,
) T {
	fctx, cancel := a.fetchCtx(ctx)
	v, err := fetch(fctx)
	cancel()

	// Snapshot I/O must not be cut short by a sibling fetch failing.
	sctx, scancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer scancel()

	if err == nil && usable(v) {
		if a.snapshot != nil {
			if perr := a.snapshot.Put(sctx, key, v); perr != nil {
				a.log.Warn("Snapshot save failed", "key", key, "error", perr)
			}
		}
		return v
	}
	if err == nil {
		err = errEmptyGlobal
	}
	d.add(key, err)

	if a.snapshot != nil {
		var snap T
		ok, serr := a.snapshot.Get(sctx, key, &snap)
		switch {
		case serr != nil:
			a.log.Warn("Snapshot load failed", "key", key, "error", serr)
		case ok && usable(snap):
			a.log.Debug("Serving snapshot", "key", key)
			return snap
		}
	}
	return static()
}

func (a *Assembler) navigation(ctx context.Context, d *degradations) *cms.Navigation {
	return loadGlobal(ctx, a, d, snapshot.KeyNavigation,
		a.cms.Navigation,
		func(n *cms.Navigation) bool { return !n.Empty() },
		a.fallback.NavigationCopy,
	)
}

func (a *Assembler) footer(ctx context.Context, d *degradations) *cms.Footer {
	return loadGlobal(ctx, a, d, snapshot.KeyFooter,
		a.cms.Footer,
		func(f *cms.Footer) bool { return !f.Empty() },
		a.fallback.FooterCopy,
	)
}

func (a *Assembler) categories(ctx context.Context, d *degradations) []cms.Category {
	return loadGlobal(ctx, a, d, snapshot.KeyCategories,
		a.cms.ListCategories,
		func(c []cms.Category) bool { return len(c) > 0 },
		a.fallback.CategoriesCopy,
	)
}
