package service

import "time"

// Test hooks for pinning wall-clock time.

func SetBootstrapNow(s *BootstrapService, now func() time.Time) {
	s.now = now
}

func SetPublicNow(s *PublicService, now func() time.Time) {
	s.now = now
}

func SetEditorNow(s *EditorService, now func() time.Time) {
	s.now = now
}
