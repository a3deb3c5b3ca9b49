package categories

import "testing"

func TestDefaultTableNames(t *testing.T) {
	table := Default()
	if table.Len() != 18 {
		t.Fatalf("Len: got %d, want 18", table.Len())
	}

	tests := []struct {
		id   int
		want string
	}{
		{6018, "Books"},
		{6023, "Food & Drink"},
		{6005, "Social Networking"},
		{6001, "Weather"},
		{0, Other},
		{6002, Other},
		{-1, Other},
	}
	for _, tt := range tests {
		if got := table.Name(tt.id); got != tt.want {
			t.Errorf("Name(%d) = %q; want %q", tt.id, got, tt.want)
		}
	}
}

func TestDefaultTableOrder(t *testing.T) {
	entries := Default().Entries()
	if entries[0].ID != 6018 || entries[len(entries)-1].ID != 6001 {
		t.Errorf("order: got first %d last %d, want 6018 and 6001",
			entries[0].ID, entries[len(entries)-1].ID)
	}
	if entries[15].Name != "Shopping" {
		t.Errorf("entries[15]: got %q, want Shopping", entries[15].Name)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	table := Default()
	entries := table.Entries()
	entries[0].Name = "changed"
	if table.Name(6018) != "Books" {
		t.Error("mutating Entries() must not change the table")
	}
}

func TestNames(t *testing.T) {
	got := Default().Names([]int{6014, 9999, 6018})
	want := []string{"Games", "Other", "Books"}
	if len(got) != len(want) {
		t.Fatalf("len: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParse(t *testing.T) {
	table, err := Parse(" 6014, 6018 ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries := table.Entries()
	if len(entries) != 2 || entries[0].Name != "Games" || entries[1].Name != "Books" {
		t.Errorf("Parse order: got %+v", entries)
	}
	if table.Len() != 2 {
		t.Errorf("Len: got %d, want 2", table.Len())
	}
}

func TestParseErrors(t *testing.T) {
	for _, raw := range []string{"abc", "6018,1234", " , "} {
		if _, err := Parse(raw); err == nil {
			t.Errorf("Parse(%q): expected error", raw)
		}
	}
}

func TestNewIgnoresDuplicateIDs(t *testing.T) {
	table := New([]Category{{1, "A"}, {1, "B"}, {2, "C"}})
	if table.Len() != 2 {
		t.Errorf("Len: got %d, want 2", table.Len())
	}
	if table.Name(1) != "A" {
		t.Errorf("Name(1): got %q, want A", table.Name(1))
	}
}
