package medibot

import (
	"fmt"
	"strings"
)

// BuildRecommendationPrompt builds the prompt that asks the model to
// summarize the doctors matched for the user's symptoms.
func BuildRecommendationPrompt(symptoms string, matches []*SymptomMatch) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a doctor recommendation chatbot. Based on the input '%s', "+
		"the following doctors are suitable for the symptoms:\n", symptoms)
	for _, m := range matches {
		fmt.Fprintf(&sb, "Doctor Identity Number: %s, Name: %s, Specialization: %s, "+
			"Contact: %s, Email: %s, Hospital: %s, Location: %s\n\n",
			m.IdentityNumber, m.Name, m.Specialization, m.Contact, m.Email,
			m.HospitalName, m.HospitalLocation)
	}
	sb.WriteString("Please provide a summary of the doctor details and why these doctors are suitable.")
	return sb.String()
}

// BuildAnswerPrompt builds the prompt for a free-form question.
func BuildAnswerPrompt(question string) string {
	return fmt.Sprintf("You are an intelligent chatbot. Answer the user's question '%s' in under 200 words.", question)
}
