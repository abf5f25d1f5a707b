package session

import "github.com/meetingctl/meetingctl/internal/provider"

// TrimHistory drops the oldest messages once the estimated token count
// exceeds 80% of maxTokens. The most recent 6 messages always survive so
// an in-flight tool exchange is never cut in half.
func TrimHistory(messages []provider.Message, maxTokens int) []provider.Message {
	if len(messages) == 0 {
		return messages
	}

	threshold := maxTokens * 80 / 100
	if estimateMessagesTokens(messages) <= threshold {
		return messages
	}

	const keepRecent = 6
	if len(messages) <= keepRecent {
		return messages
	}

	for len(messages) > keepRecent && estimateMessagesTokens(messages) > threshold {
		messages = messages[1:]
	}
	return messages
}

func estimateMessagesTokens(messages []provider.Message) int {
	total := 0
	for _, msg := range messages {
		for _, c := range msg.Content {
			total += len(c.Text)
			total += len(c.ToolResult)
			total += len(c.ToolInput)
		}
	}
	return total / 4
}
