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
	"fmt"
	"strings"
)

// CheckoutOption provides a way for setting specific options while checking
// out a branch.
type CheckoutOption func(*checkoutOptions)

type checkoutOptions struct {
	Ref string
}

// WithRef forces branch to point at ref, creating it if necessary and
// discarding any local commits branch previously carried. Used to
// force-advance a branch to its freshly fetched remote-tracking tip after a
// rejected push, per the store's fetch-reset-retry cycle.
func WithRef(ref string) CheckoutOption {
	return func(opts *checkoutOptions) {
		opts.Ref = ref
	}
}

// Checkout switches to branch, creating it from its matching remote-tracking
// branch if it doesn't exist locally yet. With [WithRef], branch is instead
// force-reset to point at ref regardless of its current state.
func (c *Client) Checkout(branch string, opts ...CheckoutOption) (string, error) {
	options := &checkoutOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Ref != "" {
		return c.exec(fmt.Sprintf("git checkout -B %s %s", branch, options.Ref))
	}

	// Query the repository for all existing branches, both local and remote.
	// If a pull hasn't been done, there is a chance that an expected
	// remote branch will not be tracked
	out, err := c.exec("git branch --all --format='%(refname:short)'")
	if err != nil {
		return out, err
	}

	for _, ref := range strings.Split(out, "\n") {
		if strings.HasSuffix(ref, branch) {
			return c.exec(fmt.Sprintf("git checkout %s", branch))
		}
	}

	return c.exec(fmt.Sprintf("git checkout -b %s", branch))
}
