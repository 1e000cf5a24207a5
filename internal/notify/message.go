package notify

import (
	"fmt"

	"github.com/linskybing/dynamic-forms/internal/domain/notification"
	"github.com/linskybing/dynamic-forms/pkg/utils"
)

var titles = map[notification.Kind]string{
	notification.KindSubmissionCreated:  "New Form Submission",
	notification.KindSubmissionReviewed: "Submission {{to}}",
	notification.KindStatusChanged:      "Submission status changed",
}

var messages = map[notification.Kind]string{
	notification.KindSubmissionCreated:  "User {{ownerId}} submitted form {{formId}} (version {{schemaVersion}}).",
	notification.KindSubmissionReviewed: "Your submission for form {{formId}} has been {{to}}.",
	notification.KindStatusChanged:      "Your submission for form {{formId}} moved from {{from}} to {{to}}.",
}

// Render builds the in-app title and message of e. Review notes are
// appended to the message when present.
func Render(e notification.Event) (string, string) {
	values := map[string]string{}
	for k, v := range e.Payload {
		values[k] = fmt.Sprint(v)
	}
	title := utils.ReplacePlaceholders(titles[e.Kind], values)
	message := utils.ReplacePlaceholders(messages[e.Kind], values)
	if notes, ok := values["notes"]; ok && notes != "" {
		message += "\n\nReview notes: " + notes
	}
	return title, message
}
