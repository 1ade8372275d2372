package app

import "time"

// SetPageWait shortens the Play Store courtesy delay in tests.
func (s *ReviewService) SetPageWait(d time.Duration) { s.pageWait = d }

func (s *ReviewService) PageWait() time.Duration { return s.pageWait }
