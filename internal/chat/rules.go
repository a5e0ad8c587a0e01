package chat

import (
	"regexp"
	"strconv"
	"strings"
)

// taskRef matches "task 5", "task#5", "task # 5" and similar.
var taskRef = regexp.MustCompile(`(?i)task\s*#?\s*(\d+)`)

// updateRule maps trigger keywords to the status a referenced task moves to.
// Rules run in order and each matching rule contributes its own update, so a
// message hitting several rules moves the task several times; the last rule
// wins. A "blocked" report moves the task back to IN_PROGRESS since there is
// no blocked state in the task model.
type updateRule struct {
	keywords []string
	status   string
}

var updateRules = []updateRule{
	{keywords: []string{"done"}, status: "DONE"},
	{keywords: []string{"started", "in progress"}, status: "IN_PROGRESS"},
	{keywords: []string{"blocked"}, status: "IN_PROGRESS"},
}

// proposedUpdate is a rule hit before the assignee check.
type proposedUpdate struct {
	taskID int64
	status string
}

// extractTaskUpdates parses a message against the rule table. Updates are
// proposals only; the caller still verifies task ownership.
func extractTaskUpdates(message string) []proposedUpdate {
	var updates []proposedUpdate
	lower := strings.ToLower(message)
	for _, rule := range updateRules {
		if !containsAny(lower, rule.keywords) {
			continue
		}
		m := taskRef.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		id, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			continue
		}
		updates = append(updates, proposedUpdate{taskID: id, status: rule.status})
	}
	return updates
}

// generateReply is the scrum-bot reply stub. Checks run in order so a message
// mentioning both "blocked" and "done" gets the blocked reply.
func generateReply(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "blocked"):
		return "I've noted you're blocked. Consider updating the task status or adding a comment. Would you like me to mark a task as blocked?"
	case strings.Contains(lower, "done") || strings.Contains(lower, "completed"):
		return "Great progress! I can mark the related task as DONE if you tell me the task title or ID."
	case strings.Contains(lower, "start") || strings.Contains(lower, "started"):
		return "I can mark the task as IN_PROGRESS. Which task are you working on?"
	default:
		return "Thanks for the update. I'm here to help track progress and update tasks. You can say 'Task X is done' or 'I started Task Y' for automatic updates."
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
