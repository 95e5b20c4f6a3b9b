package catalog

// Group is a named, ordered set of selectable tokens.
type Group struct {
	Name   string
	Tokens []string
}

const (
	IssuesPhone    = "phone"
	IssuesInternet = "internet"
	IssuesVideo    = "video"
	IssuesGeneral  = "general"

	InstructionsAccess        = "Access Instructions"
	InstructionsNotifications = "Notifications"
)

var issueGroups = []Group{
	{Name: IssuesPhone, Tokens: []string{"No dial tone", "Static on line", "Cannot receive calls", "Voicemail not working"}},
	{Name: IssuesInternet, Tokens: []string{"No internet", "Slow speeds", "Intermittent connection", "WiFi drops"}},
	{Name: IssuesVideo, Tokens: []string{"No picture", "Pixelation", "Missing channels", "Remote not working"}},
	{Name: IssuesGeneral, Tokens: []string{"Damaged equipment", "Cable cut", "Relocate outlet", "Install new outlet"}},
}

var instructionGroups = []Group{
	{Name: InstructionsAccess, Tokens: []string{"Call before arrival", "Dog on premises", "Buzzer code required", "Back door entrance"}},
	{Name: InstructionsNotifications, Tokens: []string{"Text customer", "Email customer", "Notify building manager"}},
}

var reasonTokens = []string{
	"Internet Issue",
	"TV Issue",
	"Home Phone Issue",
	"Billing Inquiry",
	"Equipment Return",
	"Shaw ID / Webmail",
	"Moving Service",
	"Technician Follow Up",
}

func IssueGroups() []Group       { return cloneGroups(issueGroups) }
func InstructionGroups() []Group { return cloneGroups(instructionGroups) }

func Reasons() []string {
	return append([]string(nil), reasonTokens...)
}

func cloneGroups(in []Group) []Group {
	out := make([]Group, len(in))
	for i, g := range in {
		out[i] = Group{Name: g.Name, Tokens: append([]string(nil), g.Tokens...)}
	}
	return out
}

// Authentication methods and verification answers.
const (
	AuthPinPassphrase     = "Pin/Passphrase"
	AuthOTP               = "OTP"
	AuthPersonalQuestions = "Personal Questions Asked"
	AuthNotAuthorized     = "Not Authorized"

	VerificationYes = "Yes"
	VerificationNo  = "No"
)

func AuthMethods() []string {
	return []string{AuthPinPassphrase, AuthOTP, AuthPersonalQuestions, AuthNotAuthorized}
}

// Managed troubleshooting-step texts tied to the authentication method.
const (
	PassphraseUpdatedStep = "Pin/Passphrase Information Updated"
	AuthorizedUserStep    = "Added Cx as an Authorized User on the account with the permission of account owner."

	// NotAuthorizedDisplay replaces "Not Authorized" in the case notes.
	NotAuthorizedDisplay = "Customer not authorized on the account"
)

// Placeholder texts shown by selection displays when nothing is picked.
const (
	NoIssuesSelected       = "No issues selected"
	NoInstructionsSelected = "No instructions selected"
	NoReasonsSelected      = "No reasons selected"
)
