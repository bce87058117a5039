package status

import "fmt"

const (
	BadgePro   = "Pro User"
	BadgeFree  = "Free User"
	BadgeError = "⚠️ Error"
)

// Badge returns the account label for s. A failed fetch with nothing known
// yet shows BadgeError.
func Badge(s Snapshot) string {
	switch {
	case s.Err != nil && !s.Known:
		return BadgeError
	case s.IsPro:
		return BadgePro
	default:
		return BadgeFree
	}
}

// UsageLine describes the usage counter for s.
func UsageLine(s Snapshot) string {
	switch {
	case s.IsPro:
		return "👑 Pro: Unlimited uses"
	case s.Usage.Locked():
		return fmt.Sprintf("🚫 Use limit reached: %d of %d", s.Usage.Count, s.Usage.Limit)
	default:
		return fmt.Sprintf("Uses: %d of %d", s.Usage.Count, s.Usage.Limit)
	}
}
