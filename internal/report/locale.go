// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import "fmt"

// deadlineStatus classifies a record by its day difference at composition
// time.
type deadlineStatus int

const (
	statusOverdue deadlineStatus = iota
	statusDueToday
	statusApproaching
	statusFuture
)

// approachingWindow is the day-difference ceiling for the "approaching"
// status.
const approachingWindow = 3

// classifyStatus maps a day difference to its status.
func classifyStatus(diff int) deadlineStatus {
	switch {
	case diff < 0:
		return statusOverdue
	case diff == 0:
		return statusDueToday
	case diff <= approachingWindow:
		return statusApproaching
	default:
		return statusFuture
	}
}

// statusMarkers are the fixed emoji markers per status.
var statusMarkers = map[deadlineStatus]string{
	statusOverdue:     ":rotating_light:",
	statusDueToday:    ":alarm_clock:",
	statusApproaching: ":warning:",
	statusFuture:      ":calendar:",
}

// phraseSet holds the localized message fragments for one language.
type phraseSet struct {
	header        string
	summaryOne    string
	summaryMany   string // %d count
	noDeadlines   string
	more          string // %d remaining records
	dueToday      string
	overdueOne    string
	overdueMany   string // %d days
	dueInOne      string
	dueInMany     string // %d days
	unknownAuthor string
	fieldElement  string
	fieldDeadline string
	fieldLocation string
	fieldAuthor   string
}

// locales are the supported message languages.
var locales = map[string]phraseSet{
	"en": {
		header:        "Deadline notifications",
		summaryOne:    "1 deadline needs attention.",
		summaryMany:   "%d deadlines need attention.",
		noDeadlines:   "No deadlines today. :tada:",
		more:          "...and %d more.",
		dueToday:      "due today",
		overdueOne:    "overdue by 1 day",
		overdueMany:   "overdue by %d days",
		dueInOne:      "due in 1 day",
		dueInMany:     "due in %d days",
		unknownAuthor: "Unknown",
		fieldElement:  "Element",
		fieldDeadline: "Deadline",
		fieldLocation: "Location",
		fieldAuthor:   "Author",
	},
	"ja": {
		header:        "期限のお知らせ",
		summaryOne:    "対応が必要な期限が1件あります。",
		summaryMany:   "対応が必要な期限が%d件あります。",
		noDeadlines:   "本日お知らせする期限はありません :tada:",
		more:          "...ほか%d件。",
		dueToday:      "本日が期限です",
		overdueOne:    "期限を1日過ぎています",
		overdueMany:   "期限を%d日過ぎています",
		dueInOne:      "期限まであと1日です",
		dueInMany:     "期限まであと%d日です",
		unknownAuthor: "不明",
		fieldElement:  "対象",
		fieldDeadline: "期限",
		fieldLocation: "場所",
		fieldAuthor:   "担当",
	},
}

// phrasesFor returns the phrase set for lang, defaulting to English.
func phrasesFor(lang string) phraseSet {
	if p, ok := locales[lang]; ok {
		return p
	}
	return locales["en"]
}

// summary formats the matching-record count line.
func (p phraseSet) summary(count int) string {
	if count == 1 {
		return p.summaryOne
	}
	return fmt.Sprintf(p.summaryMany, count)
}

// statusPhrase formats the localized phrase for a day difference.
func (p phraseSet) statusPhrase(diff int) string {
	switch classifyStatus(diff) {
	case statusOverdue:
		if diff == -1 {
			return p.overdueOne
		}
		return fmt.Sprintf(p.overdueMany, -diff)
	case statusDueToday:
		return p.dueToday
	default:
		if diff == 1 {
			return p.dueInOne
		}
		return fmt.Sprintf(p.dueInMany, diff)
	}
}
