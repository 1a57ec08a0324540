//go:build !gguf

package provider

import "fmt"

func NewGGUFClient(model string) (Client, error) {
	return nil, fmt.Errorf("in-process GGUF backend not built: build with -tags gguf (requires llama_go shared library)")
}

// GGUFEnabled reports whether this binary was built with in-process support.
func GGUFEnabled() bool {
	return false
}
