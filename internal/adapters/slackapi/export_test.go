package slackapi

// SetMaxResponseBytes lowers the body limit so tests need not serve 64 MiB.
func (s *HTTPSender) SetMaxResponseBytes(n int64) { s.maxBytes = n }
