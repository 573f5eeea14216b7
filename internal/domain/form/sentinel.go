package form

// Sentinel is a reserved option value signaling an unselectable
// placeholder state through the options protocol. Real option values
// are store-assigned integer ids rendered as decimal strings;
// sentinel values are non-numeric tokens, so the two spaces never
// collide.
type Sentinel string

const (
	// SentinelNoUser is returned while the dependent user field has no
	// selection yet.
	SentinelNoUser Sentinel = "no_user"
	// SentinelNoTasks is returned when the selected user has no open
	// tasks.
	SentinelNoTasks Sentinel = "no_tasks"
	// SentinelError is returned when loading options failed.
	SentinelError Sentinel = "err"
)

// String returns the wire form of the sentinel.
func (s Sentinel) String() string { return string(s) }

// IsSentinel reports whether value is one of the reserved sentinel
// tokens. Submissions carrying a sentinel as their task selection are
// invalid.
func IsSentinel(value string) bool {
	switch Sentinel(value) {
	case SentinelNoUser, SentinelNoTasks, SentinelError:
		return true
	}
	return false
}
