package realtime

import "fmt"

// The realtime endpoint multiplexes two logical streams over one text
// channel, distinguished by string prefixes. Outbound control frames use
// upper-case commands, inbound frames use lower-case family tags.
const (
	chatPrefix         = "chat|"
	notificationPrefix = "notification|"
)

func joinFrame(rfqID int) string {
	return fmt.Sprintf("JOIN|%d", rfqID)
}

func leaveFrame(rfqID int) string {
	return fmt.Sprintf("LEAVE|%d", rfqID)
}

func chatFrame(rfqID int, text string) string {
	return fmt.Sprintf("CHAT|%d|%s", rfqID, text)
}
