// Package hub resolves GGUF model specs to local files, downloading from
// Hugging Face into the model cache when needed.
package hub

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultRevision is the default branch to resolve files from.
const DefaultRevision = "main"

// DefaultModel is the GGUF spec used when none is configured.
const DefaultModel = "Meta-Llama-3-8B-Instruct.Q4_0.gguf"

// ResolveURL returns the direct download URL for a file in a Hugging Face repo.
func ResolveURL(repo, revision, file string) string {
	if revision == "" {
		revision = DefaultRevision
	}
	return fmt.Sprintf("https://huggingface.co/%s/resolve/%s/%s", strings.TrimPrefix(repo, "https://huggingface.co/"), revision, file)
}

// ModelCacheDir returns the directory where GGUF models are cached
// (~/.cache/accesstwin/models or ACCESSTWIN_MODEL_CACHE).
func ModelCacheDir() (string, error) {
	if d := os.Getenv("ACCESSTWIN_MODEL_CACHE"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	cache := os.Getenv("XDG_CACHE_HOME")
	if cache == "" {
		cache = filepath.Join(home, ".cache")
	}
	return filepath.Join(cache, "accesstwin", "models"), nil
}

// LocalPath returns the path where a repo/file would be cached.
func LocalPath(repo, file string) (string, error) {
	base, err := ModelCacheDir()
	if err != nil {
		return "", err
	}
	safeRepo := strings.ReplaceAll(repo, "/", "_")
	return filepath.Join(base, safeRepo, file), nil
}

// ListCached returns the GGUF files present in the model cache, relative to
// the cache dir, sorted.
func ListCached() ([]string, error) {
	base, err := ModelCacheDir()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil, nil
	}
	files, err := doublestar.Glob(os.DirFS(base), "**/*.gguf")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Download fetches url to destPath. Creates parent dirs. Uses ctx for cancel.
func Download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "accesstwin/1.0")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: %s", url, resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}
	f, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, resp.Body)
	return err
}

// ResolveModel resolves a model spec to a local GGUF path, downloading from
// Hugging Face if needed. spec can be:
//   - local path to a .gguf file (returned as-is)
//   - "repo:file.gguf" (Hugging Face; download to cache)
//   - "org/repo/file.gguf" (Hugging Face; last component is file)
//   - bare "file.gguf" (looked up in the model cache)
func ResolveModel(ctx context.Context, spec string) (string, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", fmt.Errorf("empty model spec")
	}
	// Hugging Face: "repo:filename"
	if idx := strings.Index(spec, ":"); idx >= 0 {
		repo := strings.TrimPrefix(spec[:idx], "hf:")
		file := spec[idx+1:]
		if repo != "" && file != "" && strings.HasSuffix(file, ".gguf") {
			return fetchToCache(ctx, repo, file)
		}
		return "", fmt.Errorf("invalid model spec: %s", spec)
	}
	// Hugging Face: "org/repo/filename.gguf"
	if strings.HasSuffix(spec, ".gguf") && strings.Count(spec, "/") >= 2 && !filepath.IsAbs(spec) && !strings.HasPrefix(spec, ".") {
		last := strings.LastIndex(spec, "/")
		return fetchToCache(ctx, spec[:last], spec[last+1:])
	}
	// Existing local path.
	if _, err := os.Stat(spec); err == nil {
		return spec, nil
	}
	// Bare filename: look in the cache.
	if strings.HasSuffix(spec, ".gguf") && !strings.Contains(spec, "/") {
		cached, err := ListCached()
		if err == nil {
			base, _ := ModelCacheDir()
			for _, c := range cached {
				if filepath.Base(c) == spec {
					return filepath.Join(base, c), nil
				}
			}
		}
	}
	return "", fmt.Errorf("model not found: %s", spec)
}

func fetchToCache(ctx context.Context, repo, file string) (string, error) {
	dest, err := LocalPath(repo, file)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(dest); err == nil {
		return dest, nil
	}
	url := ResolveURL(repo, DefaultRevision, file)
	if err := Download(ctx, url, dest); err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	return dest, nil
}
