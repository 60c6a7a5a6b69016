package client

import "time"

// runWithTimeout schedules fn on its own goroutine and waits up to
// ServerTimeout for it to finish. On timeout the goroutine is abandoned,
// not cancelled: it runs to completion in the background and its effects
// (removed locations, sent notifications) still land after the caller has
// already been told false. That trade-off is load-bearing; callers depend
// on the eventual send.
func (c *Client) runWithTimeout(fn func()) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				c.Logger.Printf("apclient: background send panicked: %v", r)
			}
		}()
		fn()
	}()
	select {
	case <-done:
		return true
	case <-time.After(c.ServerTimeout):
		return false
	}
}
