package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// draftDescription is stamped on every extracted appointment.
const draftDescription = "Scheduled via AI Assistant"

// isoLayout is how draft instants are serialized: local wall time, no offset.
const isoLayout = "2006-01-02T15:04:05"

// Matched against the user side of the conversation: month/day/year dates
// like "03/15/2025", clock times like "10:00 AM" (meridiem optional), and a
// "subject:"/"purpose:" label whose colon is optional.
var (
	dateRE    = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	timeRE    = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)?\b`)
	subjectRE = regexp.MustCompile(`(?i)\b(subject|purpose):?\s*(.+)`)
)

// ExtractAppointment scans the user-authored messages in history for a
// date, a time, and a subject/purpose label, and builds a one-hour Draft
// from the first occurrence of each. The second return is false when any
// of the three is missing; that is the normal "nothing to book yet"
// outcome, not an error.
//
// Message texts are joined on newlines so a subject capture ends at its
// own message. Calendar correctness of the date token is not validated.
func ExtractAppointment(history []Message) (Draft, bool) {
	var texts []string
	for _, msg := range history {
		if msg.Sender == SenderUser {
			texts = append(texts, msg.Text)
		}
	}
	joined := strings.Join(texts, "\n")

	dateToken := dateRE.FindString(joined)
	timeMatch := timeRE.FindStringSubmatch(joined)
	subjectMatch := subjectRE.FindStringSubmatch(joined)
	if dateToken == "" || timeMatch == nil || subjectMatch == nil {
		return Draft{}, false
	}

	hour, _ := strconv.Atoi(timeMatch[1])
	minute, _ := strconv.Atoi(timeMatch[2])
	meridiem := strings.ToUpper(timeMatch[3])

	start, err := clockTime(dateToken, hour, minute, meridiem)
	if err != nil {
		return Draft{}, false
	}

	endHour, endMeridiem := addOneHour(hour, meridiem)
	end, err := clockTime(dateToken, endHour, minute, endMeridiem)
	if err != nil {
		return Draft{}, false
	}

	return Draft{
		Subject:       strings.TrimSpace(subjectMatch[2]),
		StartDateTime: start.Format(isoLayout),
		EndDateTime:   end.Format(isoLayout),
		Description:   draftDescription,
	}, true
}

// addOneHour applies informal 12-hour arithmetic to the matched time
// token: incrementing past 12 flips the meridiem and wraps the hour back
// into the 1-12 range. A token without a meridiem gains "AM" when the
// flip triggers. Known limitation: an appointment crossing midnight
// (e.g. 11:30 PM) keeps the start date, so its end lands on the wrong
// calendar day.
func addOneHour(hour int, meridiem string) (int, string) {
	hour++
	if hour >= 12 {
		if meridiem == "AM" {
			meridiem = "PM"
		} else {
			meridiem = "AM"
		}
	}
	if hour > 12 {
		hour -= 12
	}
	return hour, meridiem
}

// clockTime combines a mm/dd/yyyy date token with an hour/minute pair
// into a local instant.
func clockTime(dateToken string, hour, minute int, meridiem string) (time.Time, error) {
	parts := strings.Split(dateToken, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("chat: malformed date token %q", dateToken)
	}
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])

	switch meridiem {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}

	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}
