package backup

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/urgecare/urgecare/internal/constants"
	"github.com/urgecare/urgecare/internal/models"
)

// BOM is prefixed to every CSV export so spreadsheets detect UTF-8.
const BOM = "\uFEFF"

var (
	longDigits   = regexp.MustCompile(`^\d{10,}$`)
	leadingZero  = regexp.MustCompile(`^0\d+`)
	formulaStart = regexp.MustCompile(`^[=+\-@]`)
)

// csvEscape quotes per RFC 4180: fields containing a comma, quote, or
// newline are wrapped in quotes with embedded quotes doubled.
func csvEscape(s string) string {
	needs := strings.ContainsAny(s, "\",\n")
	body := strings.ReplaceAll(s, `"`, `""`)
	if needs {
		return `"` + body + `"`
	}
	return body
}

// defuse neutralizes spreadsheet hazards in a text field. Long or
// leading-zero digit runs are wrapped as a literal formula so they survive
// as text instead of collapsing to scientific notation; anything starting
// with a formula trigger gets an apostrophe guard.
func defuse(s string) string {
	if s == "" {
		return s
	}
	if longDigits.MatchString(s) || leadingZero.MatchString(s) {
		return `="` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	if formulaStart.MatchString(s) {
		return "'" + s
	}
	return s
}

// field renders one text cell: defused first, then escaped.
func field(s string) string {
	return csvEscape(defuse(s))
}

// quotedField always wraps the cell in quotes, the convention of the todo
// export. Numeric-looking strings become literal formulas instead, and
// formula triggers keep their apostrophe guard inside the quotes.
func quotedField(s string) string {
	if longDigits.MatchString(s) || leadingZero.MatchString(s) {
		return `="` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	if formulaStart.MatchString(s) {
		s = "'" + s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// fmtLocal renders an RFC3339 timestamp in local wall-clock time for
// spreadsheet readability; unparseable input renders empty.
func fmtLocal(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	return t.Local().Format(constants.LocalTimeFormat)
}

// render joins rows with CRLF and prefixes the BOM.
func render(rows [][]string) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}
	return BOM + strings.Join(lines, "\r\n")
}

// TodosCSV renders the todo list with the display-language headers the
// original exports used.
func TodosCSV(todos []models.Todo) string {
	rows := [][]string{{
		constants.TodoCSVHeaderText,
		constants.TodoCSVHeaderDone,
		constants.TodoCSVHeaderCreated,
	}}
	for _, t := range todos {
		done := constants.TodoNotDoneLabel
		if t.Done {
			done = constants.TodoDoneLabel
		}
		rows = append(rows, []string{
			quotedField(t.Text),
			quotedField(done),
			quotedField(fmtLocal(t.CreatedAt)),
		})
	}
	return render(rows)
}

// JournalCSV renders diary entries as createdAt,text.
func JournalCSV(entries []models.DiaryEntry) string {
	rows := [][]string{{"createdAt", "text"}}
	for _, e := range entries {
		rows = append(rows, []string{
			field(fmtLocal(e.CreatedAt)),
			field(e.Text),
		})
	}
	return render(rows)
}

// WishesCSV renders wishes as createdAt,text,votes.
func WishesCSV(wishes []models.WishItem) string {
	rows := [][]string{{"createdAt", "text", "votes"}}
	for _, w := range wishes {
		rows = append(rows, []string{
			field(fmtLocal(w.CreatedAt)),
			field(w.Text),
			csvEscape(strconv.Itoa(w.Votes)),
		})
	}
	return render(rows)
}

// ExperiencesCSV renders experience-wall reflections as text,createdAt,
// the column order of the original export.
func ExperiencesCSV(items []models.Experience) string {
	rows := [][]string{{"text", "createdAt"}}
	for _, e := range items {
		rows = append(rows, []string{
			field(e.Text),
			field(fmtLocal(e.CreatedAt)),
		})
	}
	return render(rows)
}

// DelaysCSV renders the event log as occurredAt,source,minutes,description.
func DelaysCSV(records []models.DelayRecord) string {
	rows := [][]string{{"occurredAt", "source", "minutes", "description"}}
	for _, r := range records {
		rows = append(rows, []string{
			field(fmtLocal(r.OccurredAt)),
			field(string(r.Source)),
			csvEscape(strconv.FormatFloat(r.Minutes, 'f', -1, 64)),
			field(r.Description),
		})
	}
	return render(rows)
}
