package timeline

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	timelint "github.com/reoring/timelint"
)

type assetRef struct {
	index int
	src   string
}

// CheckAssets warns about image sources that do not resolve to a regular file
// under assetRoot. Lookups run concurrently; warnings keep item order.
func (v *Validator) CheckAssets(items []any, assetRoot string) timelint.Issues {
	var refs []assetRef
	for i, raw := range items {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		img, ok := m["image"].(map[string]any)
		if !ok {
			continue
		}
		src, ok := img["src"].(string)
		if !ok || !strings.HasPrefix(src, "/") {
			continue
		}
		refs = append(refs, assetRef{index: i, src: src})
	}
	if len(refs) == 0 {
		return nil
	}

	missing := make([]bool, len(refs))
	var eg errgroup.Group
	eg.SetLimit(v.opt.AssetWorkers)
	for k, ref := range refs {
		k, ref := k, ref
		eg.Go(func() error {
			missing[k] = !assetExists(assetRoot, ref.src)
			return nil
		})
	}
	_ = eg.Wait()

	var iss timelint.Issues
	for k, ref := range refs {
		if !missing[k] {
			continue
		}
		file := path.Join(filepath.ToSlash(assetRoot), strings.TrimPrefix(ref.src, "/"))
		msg := v.ctx.Translator.Message(timelint.CodeMissingAsset, map[string]string{"file": file})
		v.log.Debug("missing asset", zap.String("file", file))
		iss = timelint.AppendIssues(iss, timelint.Root().Index(ref.index).Field("image").Field("src").Issue(timelint.CodeMissingAsset, msg, "file", file))
	}
	return iss
}

// assetExists resolves a root-relative src below root. Sources escaping the
// root never exist.
func assetExists(root, src string) bool {
	rel := filepath.FromSlash(strings.TrimPrefix(src, "/"))
	if !filepath.IsLocal(rel) {
		return false
	}
	fi, err := os.Stat(filepath.Join(root, rel))
	return err == nil && fi.Mode().IsRegular()
}
