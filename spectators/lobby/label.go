package lobby

import (
	"fmt"
	"time"
)

// ElapsedLabel renders how long ago createdAt was, rounded down. Future
// timestamps read as "Just now".
func ElapsedLabel(now, createdAt time.Time) string {
	age := now.Sub(createdAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age < time.Minute:
		return "Just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm ago", int(age/time.Minute))
	default:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	}
}

func statusLine(live int) string {
	switch live {
	case 0:
		return "No live rooms"
	case 1:
		return "1 live room"
	default:
		return fmt.Sprintf("%d live rooms", live)
	}
}

const statusError = "Error loading rooms"
