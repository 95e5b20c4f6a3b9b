// Package notes renders the case notes and SPINS texts that agents paste
// into the ticketing system. Both renderers are pure.
package notes

import (
	"strings"

	"github.com/harunnryd/notedesk/internal/catalog"
)

// Callback is one call back line of the case notes.
type Callback struct {
	Reason      string
	CaseNumber  string
	Date        string
	TimeDisplay string
}

type CaseNotes struct {
	ContactID             string
	SpokenTo              string
	PhoneNumber           string
	CallBackNo            string
	AccountNumber         string
	VerificationCompleted string
	AuthenticationMethod  string
	ReasonOfCall          string
	TroubleshootingSteps  []string
	EquipmentSNs          []string
	EquipmentModels       []string
	Resolutions           []string
	TicketNumbers         []string
	InfoAssistDocs        []string
	AgentAssistSummaries  []string
	FlowParagraphs        []string

	// ScheduledCallbacks are the call backs booked during this case.
	// When empty, PendingCallback (if any) is shown instead.
	ScheduledCallbacks []Callback
	PendingCallback    *Callback

	RogersMastercard string
}

type Spins struct {
	CustomerName       string
	PhoneNumber        string
	CaseNumber         string
	EquipmentNameModel string
	SerialNumber       string
	// Issues and Instructions are already flattened across categories
	// with the custom entry last.
	Issues            []string
	ToolsInfo         string
	Instructions      []string
	RepeatServiceCall string
}

const bullet = "• "

// FormatCaseNotes renders the case notes. Empty fields produce nothing.
func FormatCaseNotes(n CaseNotes) string {
	var b strings.Builder

	line := func(label, value string) {
		if value != "" {
			b.WriteString(label + value + "\n\n")
		}
	}
	joined := func(label string, values []string) {
		if len(values) > 0 {
			b.WriteString(label + strings.Join(values, ", ") + "\n\n")
		}
	}
	bullets := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		b.WriteString(label + "\n")
		for _, v := range values {
			b.WriteString(bullet + v + "\n")
		}
		b.WriteString("\n")
	}
	paragraphs := func(label string, values []string) {
		if len(values) == 0 {
			return
		}
		b.WriteString(label + "\n\n")
		for _, v := range values {
			b.WriteString(v + "\n\n")
		}
	}

	line("Contact ID: ", n.ContactID)
	line("Spoken To: ", n.SpokenTo)
	line("Ph no.: ", n.PhoneNumber)
	line("Call Back No.: ", n.CallBackNo)
	line("Account Number: ", n.AccountNumber)
	line("Verification Completed: ", n.VerificationCompleted)
	line("Authentication Method: ", authDisplay(n.AuthenticationMethod))
	line("Reason of the call: ", n.ReasonOfCall)
	bullets("Troubleshooting Steps:", n.TroubleshootingSteps)
	joined("Affected Equipment SN: ", n.EquipmentSNs)
	joined("Affected Equipment Model: ", n.EquipmentModels)
	joined("Resolution: ", n.Resolutions)
	joined("Relevant Ticket Number: ", n.TicketNumbers)
	bullets("Info Assist / Support Docs Used:", n.InfoAssistDocs)
	paragraphs("Agent Assist Summary:", n.AgentAssistSummaries)
	paragraphs("Flow:", n.FlowParagraphs)

	switch {
	case len(n.ScheduledCallbacks) > 0:
		b.WriteString("Call Backs Scheduled:\n")
		for _, c := range n.ScheduledCallbacks {
			b.WriteString(callbackLine(c) + "\n")
		}
		b.WriteString("\n")
	case n.PendingCallback != nil && n.PendingCallback.Reason != "" && n.PendingCallback.Date != "":
		b.WriteString("Call Back Scheduled:\n")
		b.WriteString(callbackLine(*n.PendingCallback) + "\n\n")
	}

	line("Rogers Mastercard: ", n.RogersMastercard)

	return strings.TrimSpace(b.String())
}

func authDisplay(method string) string {
	if method == catalog.AuthNotAuthorized {
		return catalog.NotAuthorizedDisplay
	}
	return method
}

func callbackLine(c Callback) string {
	caseNumber := ""
	if c.CaseNumber != "" {
		caseNumber = " (Case: " + c.CaseNumber + ")"
	}
	return bullet + c.Reason + caseNumber + " - " + c.Date + " at " + c.TimeDisplay
}

// FormatSpins renders the SPINS block. Empty fields produce nothing.
func FormatSpins(s Spins) string {
	var b strings.Builder
	line := func(label, value string) {
		if value != "" {
			b.WriteString(label + value + "\n")
		}
	}

	line("Customer: ", s.CustomerName)
	line("Phone: ", s.PhoneNumber)
	line("Case #: ", s.CaseNumber)
	line("Equipment: ", s.EquipmentNameModel)
	line("S/N: ", s.SerialNumber)
	line("Issues: ", strings.Join(s.Issues, ", "))
	line("Tools: ", s.ToolsInfo)
	line("Additional Instructions: ", strings.Join(s.Instructions, ", "))
	line("Repeat: ", s.RepeatServiceCall)

	return strings.TrimSpace(b.String())
}
