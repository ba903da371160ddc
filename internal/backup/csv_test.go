package backup

import (
	"strings"
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/models"
)

func TestDefuse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello", "hello"},
		{"empty", "", ""},
		{"formula equals", "=1+1", "'=1+1"},
		{"formula plus", "+5", "'+5"},
		{"formula minus", "-5", "'-5"},
		{"formula at", "@cmd", "'@cmd"},
		{"long digits", "0123456789012", `="0123456789012"`},
		{"phone number", "09123456789", `="09123456789"`},
		{"leading zero", "007", `="007"`},
		{"short digits no leading zero", "123", "123"},
		{"zero then letters", "0x1f", "0x1f"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defuse(tt.in); got != tt.want {
				t.Errorf("defuse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
	}
	for _, tt := range tests {
		if got := csvEscape(tt.in); got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTodosCSV(t *testing.T) {
	created := time.Date(2025, 6, 1, 14, 30, 0, 0, time.Local).Format(time.RFC3339)
	todos := []models.Todo{
		{ID: "1", Text: "Drink water", Done: true, CreatedAt: created},
		{ID: "2", Text: "Stretch", Done: false, CreatedAt: created},
	}

	out := TodosCSV(todos)

	if !strings.HasPrefix(out, BOM) {
		t.Error("export missing BOM prefix")
	}

	body := strings.TrimPrefix(out, BOM)
	lines := strings.Split(body, "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}
	if lines[0] != "內容,完成,建立時間" {
		t.Errorf("header = %q", lines[0])
	}

	wantRow := `"Drink water","已完成","2025-06-01 14:30"`
	if lines[1] != wantRow {
		t.Errorf("row = %q, want %q", lines[1], wantRow)
	}
	if !strings.Contains(lines[2], `"未完成"`) {
		t.Errorf("pending row missing not-done label: %q", lines[2])
	}
}

func TestTodosCSVDefusesCells(t *testing.T) {
	todos := []models.Todo{
		{ID: "1", Text: "=SUM(A1:A9)", CreatedAt: "2025-06-01T00:00:00Z"},
		{ID: "2", Text: "0912345678", CreatedAt: "2025-06-01T00:00:00Z"},
	}

	out := TodosCSV(todos)
	if !strings.Contains(out, `"'=SUM(A1:A9)"`) {
		t.Errorf("formula text not guarded: %q", out)
	}
	if !strings.Contains(out, `="0912345678"`) {
		t.Errorf("leading-zero number not wrapped as literal: %q", out)
	}
}

func TestJournalCSV(t *testing.T) {
	entries := []models.DiaryEntry{
		{ID: "1", Text: "calm, steady", CreatedAt: "2025-06-01T00:00:00Z"},
		{ID: "2", Text: "=1+1", CreatedAt: "2025-06-01T01:00:00Z"},
	}

	out := JournalCSV(entries)
	body := strings.TrimPrefix(out, BOM)
	lines := strings.Split(body, "\r\n")
	if lines[0] != "createdAt,text" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(out, `"calm, steady"`) {
		t.Errorf("comma text not quoted: %q", out)
	}
	if !strings.Contains(out, "'=1+1") {
		t.Errorf("formula not defused: %q", out)
	}
}

func TestWishesCSV(t *testing.T) {
	wishes := []models.WishItem{
		{ID: "1", Text: "quiet mornings", Votes: 12, CreatedAt: "2025-06-01T00:00:00Z"},
	}

	out := WishesCSV(wishes)
	if !strings.Contains(out, "quiet mornings,12") {
		t.Errorf("votes column wrong: %q", out)
	}
}

func TestExperiencesCSV(t *testing.T) {
	items := []models.Experience{
		{ID: "1", Text: "=stayed strong", CreatedAt: "2025-06-01T00:00:00Z"},
	}

	out := ExperiencesCSV(items)
	if !strings.HasPrefix(out, BOM) {
		t.Error("export missing BOM prefix")
	}
	if !strings.HasPrefix(strings.TrimPrefix(out, BOM), "text,createdAt\r\n") {
		t.Errorf("header wrong: %q", out)
	}
	// Formula prefix stays defused in the text column
	if !strings.Contains(out, "'=stayed strong") {
		t.Errorf("text cell not defused: %q", out)
	}
}

func TestDelaysCSV(t *testing.T) {
	records := []models.DelayRecord{
		{ID: "1", OccurredAt: "2025-06-01T00:00:00Z", Source: models.SourceChant, Minutes: 2.5, Description: "after chanting"},
	}

	out := DelaysCSV(records)
	if !strings.Contains(out, "chant,2.5,after chanting") {
		t.Errorf("delay row wrong: %q", out)
	}
	if !strings.Contains(strings.TrimPrefix(out, BOM), "occurredAt,source,minutes,description") {
		t.Errorf("header wrong: %q", out)
	}
}

func TestFmtLocal(t *testing.T) {
	if got := fmtLocal("not-a-timestamp"); got != "" {
		t.Errorf("fmtLocal(garbage) = %q, want empty", got)
	}
}
