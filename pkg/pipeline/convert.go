package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/mulnet/pkg/cache"
	mio "github.com/matzehuels/mulnet/pkg/io"
	"github.com/matzehuels/mulnet/pkg/observability"
	"github.com/matzehuels/mulnet/pkg/reticulate"
)

// Convert writes src in the given format: the unfolded MUL-tree as Newick,
// the folded network as extended Newick, or the network as JSON. The
// second result reports a cache hit.
func (r *Runner) Convert(ctx context.Context, src *mio.Source, format string, opts Options) ([]byte, bool, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	key := r.Keyer.ConvertKey(cache.Hash(src.Data), opts.ConvertKeyOpts(format))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "convert")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "convert")
	}

	rt, err := r.Build(ctx, src, opts)
	if err != nil {
		return nil, false, err
	}
	out, err := Encode(rt, format)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, key, out, cache.TTLConvert); err != nil {
		opts.Logger.Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "convert", len(out))
	}
	return out, false, nil
}

// Encode renders rt in one of the conversion formats.
func Encode(rt *reticulate.ReticulateTree, format string) ([]byte, error) {
	switch format {
	case FormatNewick:
		return []byte(rt.Newick() + "\n"), nil
	case FormatENewick:
		s, err := rt.ExtendedNewick()
		if err != nil {
			return nil, err
		}
		return []byte(s + "\n"), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := mio.WriteNetwork(rt.Network(), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, ValidateFormat(format)
}
