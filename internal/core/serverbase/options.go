// SPDX-License-Identifier: MPL-2.0

package serverbase

// Option configures a Base at construction time.
type Option func(*Base)

// WithErrorChannel widens the error channel buffer from its default of 1.
// A server that reports errors faster than its owner drains them (a watch
// loop pushing rebuild failures, say) can buffer more before drops begin.
func WithErrorChannel(size int) Option {
	return func(b *Base) {
		b.errCh = make(chan error, size)
	}
}
