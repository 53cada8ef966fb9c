// session_cleanup.go
//
// A rotating quote-of-the-day API with anonymous sessions, likes, and bookmarks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of author-clock.
// author-clock is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// author-clock is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with author-clock.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package jobs

import (
	"log"
	"time"

	"github.com/localnerve/author-clock/internal/services"
)

// SessionCleanup runs the idle-session purge once at startup and then
// every night at 03:00 UTC. Failures are logged and never fatal; the
// next run retries.
type SessionCleanup struct {
	Sessions *services.SessionService

	stop chan struct{}
	done chan struct{}
}

// NewSessionCleanup constructs the cleanup job.
func NewSessionCleanup(sessions *services.SessionService) *SessionCleanup {
	return &SessionCleanup{
		Sessions: sessions,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs an immediate cleanup and schedules the nightly runs on a
// background goroutine.
func (j *SessionCleanup) Start() {
	j.runOnce()

	go func() {
		defer close(j.done)
		for {
			timer := time.NewTimer(untilNextRun(time.Now().UTC()))
			select {
			case <-timer.C:
				j.runOnce()
			case <-j.stop:
				timer.Stop()
				return
			}
		}
	}()
}

// Stop halts the scheduler and waits for any in-flight run to finish.
func (j *SessionCleanup) Stop() {
	close(j.stop)
	<-j.done
}

func (j *SessionCleanup) runOnce() {
	count, err := j.Sessions.CleanupOldSessions()
	if err != nil {
		log.Printf("Session cleanup failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("Session cleanup removed %d idle sessions", count)
	}
}

// untilNextRun computes the duration until the next 03:00 UTC.
func untilNextRun(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
