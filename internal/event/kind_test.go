package event

import "testing"

func TestPrimaryLabels(t *testing.T) {
	cases := []struct {
		kind Kind
		want string
	}{
		{KindCreateFile, "create_file"},
		{KindCreateFolder, "create_folder"},
		{KindRemoveFile, "remove_file"},
		{KindRemoveFolder, "remove_folder"},
		{KindContentChange, "content_change"},
		{KindRenameTo, "rename_to"},
		{KindRenameFrom, "rename_from"},
		{KindAccess, ""},
		{KindCreateOther, ""},
		{KindRemoveOther, ""},
		{KindModifyOther, ""},
		{KindUnclassified, ""},
	}
	for _, tc := range cases {
		if got := tc.kind.Primary(); got != tc.want {
			t.Errorf("Primary(%v) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestMatchesNameCoarse(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		want bool
	}{
		{"create", KindCreateFile, true},
		{"create", KindCreateFolder, true},
		{"create", KindCreateOther, true},
		{"create", KindRemoveFile, false},
		{"remove", KindRemoveFolder, true},
		{"remove", KindContentChange, false},
		{"access", KindAccess, true},
		{"access", KindContentChange, false},
		{"modify", KindContentChange, true},
		{"modify", KindRenameTo, true},
		{"modify", KindRenameFrom, true},
		// modify and write also match pure access events.
		{"modify", KindAccess, true},
		{"write", KindAccess, true},
		{"write", KindContentChange, true},
		{"write", KindCreateFile, false},
	}
	for _, tc := range cases {
		if got := tc.kind.MatchesName(tc.name); got != tc.want {
			t.Errorf("MatchesName(%v, %q) = %v, want %v", tc.kind, tc.name, got, tc.want)
		}
	}
}

func TestMatchesNameFineGrained(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		want bool
	}{
		{"create_file", KindCreateFile, true},
		{"create_file", KindCreateFolder, false},
		{"create_folder", KindCreateFolder, true},
		{"content_change", KindContentChange, true},
		{"content_change", KindModifyOther, false},
		{"rename_to", KindRenameTo, true},
		{"rename_from", KindRenameFrom, true},
		{"remove_file", KindRemoveFile, true},
		{"remove_folder", KindRemoveFolder, true},
	}
	for _, tc := range cases {
		if got := tc.kind.MatchesName(tc.name); got != tc.want {
			t.Errorf("MatchesName(%v, %q) = %v, want %v", tc.kind, tc.name, got, tc.want)
		}
	}
}

func TestMatchesNameCaseInsensitive(t *testing.T) {
	if !KindCreateFile.MatchesName("CREATE") {
		t.Error("expected coarse names to be case-insensitive")
	}
	if !KindCreateFile.MatchesName("Create_File") {
		t.Error("expected fine-grained names to be case-insensitive")
	}
}

func TestMatchesNameUnrecognized(t *testing.T) {
	for _, name := range []string{"", "bogus", "created", "deleted"} {
		if KindCreateFile.MatchesName(name) {
			t.Errorf("unrecognized name %q should never match", name)
		}
	}
}
