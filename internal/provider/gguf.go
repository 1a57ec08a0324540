//go:build gguf

package provider

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	"github.com/accesstwin/accesstwin-go/internal/hub"
	"github.com/ebitengine/purego"
)

// engine holds the single resident in-process model. Loading is expensive, so
// the model stays loaded across probe and generate calls and is swapped only
// when the requested spec changes. All access goes through engine.mu.
var engine struct {
	mu   sync.Mutex
	lib  uintptr
	spec string
	ptr  unsafe.Pointer

	loadFn     func(path *byte, nCtx, nGpuLayers int) unsafe.Pointer
	freeFn     func(model unsafe.Pointer)
	beginFn    func(model unsafe.Pointer, prompt *byte, maxTokens int) unsafe.Pointer
	nextFn     func(gen unsafe.Pointer, buf *byte, bufCap int) int
	endFn      func(gen unsafe.Pointer)
	getErrorFn func() string
}

var (
	libPath     string
	libPathOnce sync.Once
)

func findLibPath() string {
	libPathOnce.Do(func() {
		candidates := []string{
			"llama-go/build/libllama_go.so",
			"llama-go/build/llama_go.dll",
			"llama-go/build/libllama_go.dylib",
			"libllama_go.so",
			"llama_go.dll",
			"libllama_go.dylib",
			"/usr/lib/libllama_go.so",
			"/usr/local/lib/libllama_go.so",
		}
		if env := os.Getenv("LLAMA_GO_LIB"); env != "" {
			candidates = append([]string{env}, candidates...)
		}
		for _, cand := range candidates {
			if _, err := os.Stat(cand); err == nil {
				libPath = cand
				return
			}
		}
		if exe, err := os.Executable(); err == nil {
			exeDir := filepath.Dir(exe)
			for _, name := range []string{"libllama_go.so", "llama_go.dll", "libllama_go.dylib"} {
				path := filepath.Join(exeDir, name)
				if _, err := os.Stat(path); err == nil {
					libPath = path
					return
				}
			}
		}
	})
	return libPath
}

func openEngineLib() error {
	if engine.lib != 0 {
		return nil
	}
	path := findLibPath()
	if path == "" {
		return fmt.Errorf("llama_go shared library not found (set LLAMA_GO_LIB or place libllama_go.so in PATH)")
	}
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("dlopen %s: %w", path, err)
	}
	purego.RegisterLibFunc(&engine.loadFn, lib, "llama_go_load")
	purego.RegisterLibFunc(&engine.freeFn, lib, "llama_go_free")
	purego.RegisterLibFunc(&engine.beginFn, lib, "llama_go_generate_begin")
	purego.RegisterLibFunc(&engine.nextFn, lib, "llama_go_generate_next")
	purego.RegisterLibFunc(&engine.endFn, lib, "llama_go_generate_end")
	purego.RegisterLibFunc(&engine.getErrorFn, lib, "llama_go_get_error")
	engine.lib = lib
	return nil
}

// ensureLoaded loads the model for spec, freeing any previously resident model
// with a different spec. Caller must hold engine.mu.
func ensureLoaded(ctx context.Context, spec string) error {
	if err := openEngineLib(); err != nil {
		return err
	}
	if engine.ptr != nil && engine.spec == spec {
		return nil
	}
	path, err := hub.ResolveModel(ctx, spec)
	if err != nil {
		return fmt.Errorf("resolve GGUF model: %w", err)
	}
	if fi, err := os.Stat(path); err != nil {
		return fmt.Errorf("model file not found: %s: %w", path, err)
	} else if fi.Size() == 0 {
		return fmt.Errorf("model file is empty: %s", path)
	}
	if engine.ptr != nil {
		engine.freeFn(engine.ptr)
		engine.ptr = nil
		engine.spec = ""
	}
	pathBytes := append([]byte(path), 0)
	ptr := engine.loadFn(&pathBytes[0], 4096, 0)
	if ptr == nil {
		if msg := engine.getErrorFn(); msg != "" {
			return fmt.Errorf("load model: %s", msg)
		}
		return fmt.Errorf("load model failed")
	}
	engine.ptr = ptr
	engine.spec = spec
	return nil
}

// GGUFClient runs generation against the in-process llama engine. The engine
// has no multi-turn API, so the conversation is flattened to one role-prefixed
// prompt. Generation is strictly sequential: the engine lock is held for the
// whole stream.
type GGUFClient struct {
	Model string
}

func NewGGUFClient(model string) (Client, error) {
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("model spec is required")
	}
	return &GGUFClient{Model: model}, nil
}

// GGUFEnabled reports whether this binary was built with in-process support.
func GGUFEnabled() bool {
	return true
}

// Probe lazily loads the model artifact if it is not already resident.
func (c *GGUFClient) Probe(ctx context.Context) (bool, string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if err := ensureLoaded(ctx, c.Model); err != nil {
		return false, fmt.Sprintf("failed to load model: %v", err)
	}
	return true, "model loaded: " + c.Model
}

// flattenPrompt renders the conversation as one prompt string.
func flattenPrompt(req Request) string {
	var b strings.Builder
	if req.System != "" {
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, t := range req.History {
		switch t.Role {
		case "assistant":
			b.WriteString("Assistant: ")
		default:
			b.WriteString("User: ")
		}
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(req.Message)
	b.WriteString("\nAssistant:")
	return b.String()
}

const ggufMaxTokens = 1024

func (c *GGUFClient) Stream(ctx context.Context, req Request) iter.Seq[Fragment] {
	return func(yield func(Fragment) bool) {
		engine.mu.Lock()
		defer engine.mu.Unlock()
		if err := ensureLoaded(ctx, c.Model); err != nil {
			yield(Fragment{Err: err})
			return
		}
		prompt := append([]byte(flattenPrompt(req)), 0)
		gen := engine.beginFn(engine.ptr, &prompt[0], ggufMaxTokens)
		if gen == nil {
			if msg := engine.getErrorFn(); msg != "" {
				yield(Fragment{Err: fmt.Errorf("generate: %s", msg)})
				return
			}
			yield(Fragment{Err: fmt.Errorf("generate failed")})
			return
		}
		defer engine.endFn(gen)

		buf := make([]byte, 512)
		for {
			if err := ctx.Err(); err != nil {
				yield(Fragment{Err: err})
				return
			}
			n := engine.nextFn(gen, &buf[0], len(buf))
			if n == 0 {
				return
			}
			if n < 0 {
				if msg := engine.getErrorFn(); msg != "" {
					yield(Fragment{Err: fmt.Errorf("generate: %s", msg)})
					return
				}
				yield(Fragment{Err: fmt.Errorf("generation failed")})
				return
			}
			if !yield(Fragment{Text: string(buf[:n])}) {
				return
			}
		}
	}
}
