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

import "strings"

// PullOption provides a way for setting specific options while pulling changes
// from the remote. Each supported option can customize how changes are pulled
// from the remote and integrated into the current repository (working directory)
type PullOption func(*pullOptions)

type pullOptions struct {
	Config []string
}

// WithPullConfig allows temporary git config to be set while pulling
// changes from the remote. Config set using this approach will override
// any config defined within existing git config files. Config must be
// provided as key value pairs; an odd number of entries makes [Client.Pull]
// return an error from [ToInlineConfig]. Config paths are not validated
func WithPullConfig(kv ...string) PullOption {
	return func(opts *pullOptions) {
		opts.Config = trim(kv...)
	}
}

// Pull all changes from a remote repository and immediately update the current
// repository (current working) directory with those changes. This ensures
// that your current repository keeps track of remote changes and stays in sync
func (c *Client) Pull(opts ...PullOption) (string, error) {
	options := &pullOptions{}
	for _, opt := range opts {
		opt(options)
	}

	cfg, err := ToInlineConfig(options.Config...)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	buf.WriteString("git")

	if len(cfg) > 0 {
		buf.WriteString(" ")
		buf.WriteString(strings.Join(cfg, " "))
	}
	buf.WriteString(" pull")

	return c.exec(buf.String())
}
