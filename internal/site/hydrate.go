package site

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/blockpage/internal/cms"
	"github.com/yungbote/blockpage/internal/render/media"
)

// Keys holding uploads contain one of these words, e.g. backgroundImage,
// clientLogo, resultsVideo.
var mediaKeyWords = []string{"image", "video", "logo", "icon", "media", "thumbnail", "poster", "avatar", "photo"}

func isMediaKey(k string) bool {
	k = strings.ToLower(k)
	for _, w := range mediaKeyWords {
		if strings.Contains(k, w) {
			return true
		}
	}
	return false
}

// cloneValue deep-copies decoded JSON so hydration never writes into the
// caller's maps.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = cloneValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = cloneValue(x)
		}
		return out
	default:
		return v
	}
}

func collectMediaIDs(v any, mediaKey bool, ids map[string]struct{}) {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			collectMediaIDs(x, isMediaKey(k), ids)
		}
	case []any:
		for _, x := range t {
			collectMediaIDs(x, mediaKey, ids)
		}
	default:
		if !mediaKey {
			return
		}
		if id, ok := media.IsBareID(v); ok {
			ids[id] = struct{}{}
		}
	}
}

func replaceMediaIDs(v any, mediaKey bool, got map[string]*cms.Media) any {
	switch t := v.(type) {
	case map[string]any:
		for k, x := range t {
			t[k] = replaceMediaIDs(x, isMediaKey(k), got)
		}
		return t
	case []any:
		for i, x := range t {
			t[i] = replaceMediaIDs(x, mediaKey, got)
		}
		return t
	default:
		if !mediaKey {
			return v
		}
		if id, ok := media.IsBareID(v); ok {
			if m := got[id]; m != nil {
				return m.AsRef()
			}
		}
		return v
	}
}

// hydrate returns a copy of values with bare upload IDs under media keys
// replaced by the fetched upload. IDs that fail to load stay as they are and
// the renderer shows its placeholder.
func (a *Assembler) hydrate(ctx context.Context, values []any, d *degradations) []any {
	out, _ := cloneValue(values).([]any)
	ids := map[string]struct{}{}
	collectMediaIDs(out, false, ids)
	if len(ids) == 0 {
		return out
	}

	var (
		mu  sync.Mutex
		got = make(map[string]*cms.Media, len(ids))
		g   errgroup.Group
	)
	g.SetLimit(a.hydrateLimit)
	for id := range ids {
		id := id
		g.Go(func() error {
			fctx, cancel := a.fetchCtx(ctx)
			defer cancel()
			m, err := a.cms.MediaByID(fctx, id)
			if err != nil {
				d.add("media "+id, err)
				return nil
			}
			mu.Lock()
			got[id] = m
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	a.log.Debug("Hydrated media", "requested", len(ids), "resolved", len(got))
	return replaceMediaIDs(out, false, got).([]any)
}
