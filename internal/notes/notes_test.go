package notes

import (
	"strings"
	"testing"

	"github.com/harunnryd/notedesk/internal/catalog"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestFormatCaseNotes_Empty(t *testing.T) {
	assert.Equal(t, "", FormatCaseNotes(CaseNotes{}))
	assert.Equal(t, "", FormatSpins(Spins{}))
}

func TestFormatCaseNotes_SingleField(t *testing.T) {
	tests := []struct {
		name string
		in   CaseNotes
		want string
	}{
		{name: "scalar", in: CaseNotes{AccountNumber: "123"}, want: "Account Number: 123"},
		{name: "steps", in: CaseNotes{TroubleshootingSteps: []string{"a"}}, want: "Troubleshooting Steps:\n• a"},
		{name: "summaries", in: CaseNotes{AgentAssistSummaries: []string{"s1", "s2"}}, want: "Agent Assist Summary:\n\ns1\n\ns2"},
		{name: "not authorized", in: CaseNotes{AuthenticationMethod: catalog.AuthNotAuthorized}, want: "Authentication Method: Customer not authorized on the account"},
		{name: "otp", in: CaseNotes{AuthenticationMethod: catalog.AuthOTP}, want: "Authentication Method: OTP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, FormatCaseNotes(tt.in)); diff != "" {
				t.Errorf("FormatCaseNotes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatCaseNotes_Scenario(t *testing.T) {
	in := CaseNotes{
		ContactID:            "C100",
		TroubleshootingSteps: []string{"Checked signal levels", "Rebooted modem"},
		EquipmentSNs:         []string{"SN123"},
	}
	want := "Contact ID: C100\n\n" +
		"Troubleshooting Steps:\n" +
		"• Checked signal levels\n" +
		"• Rebooted modem\n\n" +
		"Affected Equipment SN: SN123"

	got := FormatCaseNotes(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FormatCaseNotes mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got, FormatCaseNotes(in))
}

func TestFormatCaseNotes_FullOrder(t *testing.T) {
	in := CaseNotes{
		ContactID:             "C1",
		SpokenTo:              "Jordan",
		PhoneNumber:           "555-0100",
		CallBackNo:            "555-0101",
		AccountNumber:         "A-9",
		VerificationCompleted: "Yes",
		AuthenticationMethod:  "OTP",
		ReasonOfCall:          "Internet Issue, TV Issue",
		TroubleshootingSteps:  []string{"one", "two\nlines"},
		EquipmentSNs:          []string{"SN1", "SN2"},
		EquipmentModels:       []string{"XB7"},
		Resolutions:           []string{"Resolved", "Monitoring"},
		TicketNumbers:         []string{"T-1"},
		InfoAssistDocs:        []string{"KB-42"},
		AgentAssistSummaries:  []string{"Summary"},
		FlowParagraphs:        []string{"FLOW: Internet\nstep"},
		ScheduledCallbacks: []Callback{
			{Reason: "Follow Up", CaseNumber: "CS-1", Date: "2024-03-14", TimeDisplay: "14:00"},
			{Reason: "Customer Request", Date: "2024-03-15", TimeDisplay: "Evening"},
		},
		PendingCallback:  &Callback{Reason: "ignored", Date: "2024-03-20", TimeDisplay: "Morning"},
		RogersMastercard: "Declined",
	}

	want := strings.Join([]string{
		"Contact ID: C1",
		"Spoken To: Jordan",
		"Ph no.: 555-0100",
		"Call Back No.: 555-0101",
		"Account Number: A-9",
		"Verification Completed: Yes",
		"Authentication Method: OTP",
		"Reason of the call: Internet Issue, TV Issue",
		"Troubleshooting Steps:\n• one\n• two\nlines",
		"Affected Equipment SN: SN1, SN2",
		"Affected Equipment Model: XB7",
		"Resolution: Resolved, Monitoring",
		"Relevant Ticket Number: T-1",
		"Info Assist / Support Docs Used:\n• KB-42",
		"Agent Assist Summary:\n\nSummary",
		"Flow:\n\nFLOW: Internet\nstep",
		"Call Backs Scheduled:\n• Follow Up (Case: CS-1) - 2024-03-14 at 14:00\n• Customer Request - 2024-03-15 at Evening",
		"Rogers Mastercard: Declined",
	}, "\n\n")

	if diff := cmp.Diff(want, FormatCaseNotes(in)); diff != "" {
		t.Errorf("FormatCaseNotes mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatCaseNotes_PendingPreview(t *testing.T) {
	in := CaseNotes{PendingCallback: &Callback{Reason: "Follow Up", Date: "2024-03-14", TimeDisplay: "Afternoon"}}
	assert.Equal(t, "Call Back Scheduled:\n• Follow Up - 2024-03-14 at Afternoon", FormatCaseNotes(in))

	in.PendingCallback.Date = ""
	assert.Equal(t, "", FormatCaseNotes(in))
}

func TestFormatSpins(t *testing.T) {
	in := Spins{
		CustomerName:       "Jordan",
		PhoneNumber:        "555-0100",
		CaseNumber:         "CS-1",
		EquipmentNameModel: "XB7",
		SerialNumber:       "SN1, SN2",
		Issues:             []string{"No dial tone", "Slow speeds", "Modem beeping"},
		ToolsInfo:          "Ladder",
		Instructions:       []string{"Call before arrival", "Text customer"},
		RepeatServiceCall:  "No",
	}
	want := "Customer: Jordan\n" +
		"Phone: 555-0100\n" +
		"Case #: CS-1\n" +
		"Equipment: XB7\n" +
		"S/N: SN1, SN2\n" +
		"Issues: No dial tone, Slow speeds, Modem beeping\n" +
		"Tools: Ladder\n" +
		"Additional Instructions: Call before arrival, Text customer\n" +
		"Repeat: No"

	if diff := cmp.Diff(want, FormatSpins(in)); diff != "" {
		t.Errorf("FormatSpins mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "Tools: x", FormatSpins(Spins{ToolsInfo: "x"}))
}

func TestBudget(t *testing.T) {
	p := DefaultBudgetPolicy()

	exact := FormatSpins(Spins{CustomerName: strings.Repeat("a", 976-len("Customer: "))})
	b := p.Measure(exact)
	assert.Equal(t, 976, b.Length)
	assert.Equal(t, 100.0, b.Percent)
	assert.Equal(t, LevelDanger, b.Level)
	assert.False(t, b.Over())

	over := p.Measure(exact + "a")
	assert.Equal(t, 977, over.Length)
	assert.Equal(t, 100.0, over.Percent)
	assert.True(t, over.Over())
	assert.Equal(t, -1, over.Remaining())

	assert.Equal(t, LevelWarning, p.Measure(strings.Repeat("x", 732)).Level)
	assert.Equal(t, LevelOK, p.Measure(strings.Repeat("x", 731)).Level)
	assert.Equal(t, LevelDanger, p.Measure(strings.Repeat("x", 879)).Level)
	assert.Equal(t, LevelWarning, p.Measure(strings.Repeat("x", 878)).Level)
	assert.Equal(t, 3, p.Measure("•••").Length)
}

func TestFlowNameAndPreview(t *testing.T) {
	assert.Equal(t, "Internet No Sync", FlowName("Some intro\nflow: Internet No Sync \nsteps"))
	assert.Equal(t, "First line", FlowName("  First line  \nsecond"))
	long := strings.Repeat("x", 60)
	assert.Equal(t, strings.Repeat("x", 50)+"...", FlowName(long))

	assert.Equal(t, "short", SummaryPreview("short"))
	assert.Equal(t, strings.Repeat("y", 30)+"...", SummaryPreview(strings.Repeat("y", 31)))
}
