/*
Copyright (c) 2023 Purple Clay

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package git

import (
	"errors"
	"fmt"
	"strings"
)

// trim is the unexported counterpart of Trim, used internally by option
// builders that don't need to expose the helper as part of the public API.
func trim(strs ...string) []string {
	return Trim(strs...)
}

// ToInlineConfig converts a flattened key/value slice into `-c key=value`
// arguments suitable for inlining ahead of a git subcommand, overriding any
// config already set in the repository or user's git config files. An odd
// number of entries produces an error naming the dangling key.
func ToInlineConfig(kv ...string) ([]string, error) {
	if len(kv) == 0 {
		return nil, nil
	}

	if len(kv)%2 != 0 {
		return nil, errors.New("uneven number of config key/value pairs provided: " + kv[len(kv)-1])
	}

	cfg := make([]string, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		cfg = append(cfg, fmt.Sprintf("-c %s='%s'", kv[i], kv[i+1]))
	}

	return cfg, nil
}

// Trim iterates through a slice, trimming leading and trailing
// whitespace from each string. Empty strings are ignored
// and removed from the slice
func Trim(strs ...string) []string {
	out := make([]string, 0, len(strs))
	for _, s := range strs {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}

		out = append(out, trimmed)
	}

	return out
}

// TrimAndPrefix iterates through a slice, trimming leading and
// trailing whitespace from each string before appending the
// provided prefix. Empty strings are ignored and removed from
// the slice
func TrimAndPrefix(prefix string, strs ...string) []string {
	out := make([]string, 0, len(strs))
	for _, s := range strs {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}

		if !strings.HasPrefix(trimmed, prefix) {
			trimmed = fmt.Sprintf("%s%s", prefix, trimmed)
		}
		out = append(out, trimmed)
	}

	return out
}

// TrimAndRemove iterates through a slice, trimming leading and
// trailing whitespace from each string. Strings that are empty
// or match the removal string, are removed from the slice
func TrimAndRemove(rem string, strs ...string) []string {
	out := make([]string, 0, len(strs))
	for _, s := range strs {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" || trimmed == rem {
			continue
		}

		out = append(out, trimmed)
	}

	return out
}
