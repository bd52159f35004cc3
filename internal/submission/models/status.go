package models

// Status is the workflow state of a submission.
type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusProcessing         Status = "processing"
	StatusCompleted          Status = "completed"
	StatusReadyForCollection Status = "ready_for_collection"
	StatusCollected          Status = "collected"
	StatusRejected           Status = "rejected"
)

// StatusPending is the initial state every submission is created in.
const StatusPending = StatusSubmitted

// AllStatuses lists every status in workflow order.
var AllStatuses = []Status{
	StatusSubmitted,
	StatusUnderReview,
	StatusProcessing,
	StatusCompleted,
	StatusReadyForCollection,
	StatusCollected,
	StatusRejected,
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	_, ok := statusLabels[LangEnglish][s]
	return ok
}

// IsFinal reports whether no further work happens on the submission.
func (s Status) IsFinal() bool {
	return s == StatusCollected || s == StatusRejected
}

// Lang selects a label table.
type Lang string

const (
	LangEnglish Lang = "en"
	LangHindi   Lang = "hi"
	LangTelugu  Lang = "te"
)

var statusLabels = map[Lang]map[Status]string{
	LangEnglish: {
		StatusSubmitted:          "Submitted",
		StatusUnderReview:        "Under Review",
		StatusProcessing:         "Processing",
		StatusCompleted:          "Completed",
		StatusReadyForCollection: "Ready for Collection",
		StatusCollected:          "Collected",
		StatusRejected:           "Rejected",
	},
	LangHindi: {
		StatusSubmitted:          "जमा किया गया",
		StatusUnderReview:        "समीक्षाधीन",
		StatusProcessing:         "प्रक्रिया में",
		StatusCompleted:          "पूर्ण",
		StatusReadyForCollection: "संग्रह के लिए तैयार",
		StatusCollected:          "एकत्र किया गया",
		StatusRejected:           "अस्वीकृत",
	},
	LangTelugu: {
		StatusSubmitted:          "సమర్పించబడింది",
		StatusUnderReview:        "సమీక్షలో ఉంది",
		StatusProcessing:         "ప్రాసెసింగ్",
		StatusCompleted:          "పూర్తయింది",
		StatusReadyForCollection: "సేకరణకు సిద్ధంగా ఉంది",
		StatusCollected:          "సేకరించబడింది",
		StatusRejected:           "తిరస్కరించబడింది",
	},
}

// ParseLang maps a query value onto a label table, defaulting to English.
func ParseLang(s string) Lang {
	l := Lang(s)
	if _, ok := statusLabels[l]; ok {
		return l
	}
	return LangEnglish
}

// Label returns the English display string.
func (s Status) Label() string {
	return s.LabelIn(LangEnglish)
}

// LabelIn returns the display string in lang, falling back to English and
// then to the raw value.
func (s Status) LabelIn(lang Lang) string {
	if label, ok := statusLabels[lang][s]; ok {
		return label
	}
	if label, ok := statusLabels[LangEnglish][s]; ok {
		return label
	}
	return string(s)
}
