package mailing

import (
	"fmt"
	"html"
)

func ModerationSubject(recipeTitle string, approved bool) string {
	if approved {
		return fmt.Sprintf("Your recipe \"%s\" has been approved", recipeTitle)
	}
	return fmt.Sprintf("Your recipe \"%s\" needs changes", recipeTitle)
}

func ModerationBody(chefName, recipeTitle, notes string, approved bool, appURL string) string {
	decision := "approved and is now visible to everyone"
	if !approved {
		decision = "rejected"
	}

	body := fmt.Sprintf("<p>Hi %s,</p><p>Your recipe <strong>%s</strong> was %s.</p>",
		html.EscapeString(chefName), html.EscapeString(recipeTitle), decision)
	if notes != "" {
		body += fmt.Sprintf("<p>Moderator notes: %s</p>", html.EscapeString(notes))
	}
	if appURL != "" {
		body += fmt.Sprintf("<p><a href=\"%s\">Open Recipe Sharing Platform</a></p>", html.EscapeString(appURL))
	}
	return body
}
