package bible

import "errors"

// Sentinel errors for lookups that miss. Callers wrap these with the
// reference that failed and match with errors.Is.
var (
	ErrBookNotFound     = errors.New("book not found")
	ErrChapterNotFound  = errors.New("chapter not found")
	ErrVerseNotFound    = errors.New("verse not found")
	ErrInvalidSelection = errors.New("invalid selection")
)

// NotFound reports whether err is any of the not-found sentinels.
func NotFound(err error) bool {
	return errors.Is(err, ErrBookNotFound) ||
		errors.Is(err, ErrChapterNotFound) ||
		errors.Is(err, ErrVerseNotFound)
}
