package workspace

// Storage keys. Case-form and SPINS-form values live under the
// caseNotes_ and spins_ prefixes and are wiped by Reset; everything else
// outlives a case.
const (
	KeyCallbacks         = "callbacks"
	KeyCustomSteps       = "customTroubleshootingSteps"
	KeyRankings          = "troubleshootingStepRankings"
	KeyTheme             = "caseNotesTheme"
	KeySessionCallbacks  = "session_callbackIds"
	KeySteps             = "caseNotes_troubleshootingSteps"
	KeySelectedReasons   = "caseNotes_selectedReasons"
	KeyCustomReason      = "caseNotes_customReason"
	KeyCallbackDraft     = "caseNotes_callbackDraft"
	KeySelectedIssues    = "spins_selectedIssues"
	KeySelectedInstrs    = "spins_selectedInstructions"
	KeyCustomIssues      = "spins_customIssues"
	KeyCustomInstrs      = "spins_customInstructions"
	KeySpinsEditedByHand = "spins_fieldsModified"

	caseNotesPrefix = "caseNotes_"
	spinsPrefix     = "spins_"
)

// Flags are stored as the literal strings "true" and "false".
const (
	FlagRanking                = "rankingFeatureEnabled"
	FlagUpstreamFormatter      = "upstreamFormatterEnabled"
	FlagDownstreamFormatter    = "downstreamFormatterEnabled"
	FlagOFDMInfoFormatter      = "ofdmInfoFormatterEnabled"
	FlagOFDMTableFormatter     = "ofdmTableFormatterEnabled"
	FlagModemsOfflineFormatter = "modemsOfflineFormatterEnabled"
)

func Flags() []string {
	return []string{
		FlagRanking,
		FlagUpstreamFormatter,
		FlagDownstreamFormatter,
		FlagOFDMInfoFormatter,
		FlagOFDMTableFormatter,
		FlagModemsOfflineFormatter,
	}
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type Form string

const (
	FormCaseNotes Form = "caseNotes"
	FormSpins     Form = "spins"
)

func (f Form) prefix() string {
	if f == FormSpins {
		return spinsPrefix
	}
	return caseNotesPrefix
}

// Scalar field ids per form, in display order.
const (
	FieldContactID             = "contactId"
	FieldSpokenTo              = "spokenTo"
	FieldPhoneNumber           = "phoneNumber"
	FieldCallBackNo            = "callBackNo"
	FieldAccountNumber         = "accountNumber"
	FieldVerificationCompleted = "verificationCompleted"
	FieldAuthenticationMethod  = "authenticationMethod"
	FieldRogersMastercard      = "rogersMastercard"

	FieldCustomerName       = "customerName"
	FieldSpinsPhoneNumber   = "spinsPhoneNumber"
	FieldCaseNumber         = "caseNumber"
	FieldEquipmentNameModel = "equipmentNameModel"
	FieldSerialNumber       = "serialNumber"
	FieldToolsInfo          = "toolsInfo"
	FieldRepeatServiceCall  = "repeatServiceCall"
)

var formFields = map[Form][]string{
	FormCaseNotes: {
		FieldContactID,
		FieldSpokenTo,
		FieldPhoneNumber,
		FieldCallBackNo,
		FieldAccountNumber,
		FieldVerificationCompleted,
		FieldAuthenticationMethod,
		FieldRogersMastercard,
	},
	FormSpins: {
		FieldCustomerName,
		FieldSpinsPhoneNumber,
		FieldCaseNumber,
		FieldEquipmentNameModel,
		FieldSerialNumber,
		FieldToolsInfo,
		FieldRepeatServiceCall,
	},
}

// Fields lists the scalar field ids of a form.
func Fields(f Form) []string {
	return append([]string(nil), formFields[f]...)
}

type ListName string

const (
	ListEquipmentSNs         ListName = "equipmentSNs"
	ListEquipmentModels      ListName = "equipmentModels"
	ListResolutions          ListName = "resolutions"
	ListTicketNumbers        ListName = "ticketNumbers"
	ListInfoAssist           ListName = "infoAssist"
	ListFlowParagraphs       ListName = "flowParagraphs"
	ListAgentAssistSummaries ListName = "agentAssistSummaries"
)

// Lists returns every tag list in case-notes order.
func Lists() []ListName {
	return []ListName{
		ListEquipmentSNs,
		ListEquipmentModels,
		ListResolutions,
		ListTicketNumbers,
		ListInfoAssist,
		ListFlowParagraphs,
		ListAgentAssistSummaries,
	}
}

func (n ListName) unique() bool {
	switch n {
	case ListEquipmentSNs, ListTicketNumbers, ListInfoAssist:
		return true
	}
	return false
}

func (n ListName) key() string { return caseNotesPrefix + string(n) }

type SelectionName string

const (
	SelectionReasons      SelectionName = "reasons"
	SelectionIssues       SelectionName = "issues"
	SelectionInstructions SelectionName = "instructions"
)

func (n SelectionName) keys() (tokens, custom string) {
	switch n {
	case SelectionIssues:
		return KeySelectedIssues, KeyCustomIssues
	case SelectionInstructions:
		return KeySelectedInstrs, KeyCustomInstrs
	default:
		return KeySelectedReasons, KeyCustomReason
	}
}
