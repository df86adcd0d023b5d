package timeline

// Option configures a Timeline during creation.
type Option func(*Timeline)

// WithMaxUndoEntries bounds the undo stack. Non-positive values keep
// the default.
func WithMaxUndoEntries(max int) Option {
	return func(tl *Timeline) {
		if max > 0 {
			tl.maxUndoEntries = max
		}
	}
}
