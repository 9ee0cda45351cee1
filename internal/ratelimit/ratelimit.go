// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ratelimit reads GitHub's rate limit headers from API responses.
// It only observes; waiting or retrying is a caller decision.
package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// Header names used by the GitHub REST API to report quota state.
const (
	remainingHeader = "X-RateLimit-Remaining"
	resetHeader     = "X-RateLimit-Reset"
	limitHeader     = "X-RateLimit-Limit"
)

// Snapshot captures the quota state reported by a single API response.
type Snapshot struct {
	// Limit is the total request quota for the current window, or zero if
	// the header was absent.
	Limit int

	// Remaining is the number of requests left in the current window.
	// -1 means the header was absent.
	Remaining int

	// Reset is the time the quota window resets, or the zero time if the
	// header was absent.
	Reset time.Time
}

// Exhausted reports whether the response explicitly said the quota is spent.
// An absent header is not exhaustion.
func (s Snapshot) Exhausted() bool {
	return s.Remaining == 0
}

// Detector extracts rate limit information from HTTP responses.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Snapshot reads the rate limit headers from resp. Missing or malformed
// headers yield the documented zero-ish values rather than errors; the
// headers are advisory.
func (d *Detector) Snapshot(resp *http.Response) Snapshot {
	s := Snapshot{Remaining: -1}

	if v := resp.Header.Get(limitHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.Limit = n
		}
	}
	if v := resp.Header.Get(remainingHeader); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.Remaining = n
		}
	}
	if v := resp.Header.Get(resetHeader); v != "" {
		if unix, err := strconv.ParseInt(v, 10, 64); err == nil {
			s.Reset = time.Unix(unix, 0).UTC()
		}
	}
	return s
}

// IsRateLimited reports whether resp is a rate-limit rejection: GitHub uses
// 403 (with an exhausted quota) or 429 for these.
func (d *Detector) IsRateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden && d.Snapshot(resp).Exhausted()
}
