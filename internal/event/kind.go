package event

import "strings"

// Kind classifies a filesystem change. The taxonomy is closed: it covers only
// the categories this system acts on, with KindUnclassified as the fallback
// for anything the notification layer reports that we do not distinguish.
type Kind int

const (
	KindUnclassified Kind = iota
	KindAccess
	KindContentChange
	KindModifyOther
	KindRenameTo
	KindRenameFrom
	KindCreateFile
	KindCreateFolder
	KindCreateOther
	KindRemoveFile
	KindRemoveFolder
	KindRemoveOther
)

// IsAccess reports whether the kind is a pure access event.
func (k Kind) IsAccess() bool {
	return k == KindAccess
}

// IsCreate reports whether the kind falls in the create category.
func (k Kind) IsCreate() bool {
	switch k {
	case KindCreateFile, KindCreateFolder, KindCreateOther:
		return true
	}
	return false
}

// IsModify reports whether the kind falls in the modify category. Renames
// count as modifications of the name.
func (k Kind) IsModify() bool {
	switch k {
	case KindContentChange, KindModifyOther, KindRenameTo, KindRenameFrom:
		return true
	}
	return false
}

// IsRemove reports whether the kind falls in the remove category.
func (k Kind) IsRemove() bool {
	switch k {
	case KindRemoveFile, KindRemoveFolder, KindRemoveOther:
		return true
	}
	return false
}

// Primary returns the canonical single label for a concrete kind variant,
// used for action matching. Variants without a defined label return "".
func (k Kind) Primary() string {
	switch k {
	case KindContentChange:
		return "content_change"
	case KindRenameTo:
		return "rename_to"
	case KindRenameFrom:
		return "rename_from"
	case KindCreateFile:
		return "create_file"
	case KindCreateFolder:
		return "create_folder"
	case KindRemoveFile:
		return "remove_file"
	case KindRemoveFolder:
		return "remove_folder"
	}
	return ""
}

// MatchesName reports whether the kind satisfies a configured filter name.
// Coarse names match whole categories; "modify" and "write" also match pure
// access events. Fine-grained names match exactly one concrete variant.
// Unrecognized names never match.
func (k Kind) MatchesName(name string) bool {
	lowered := strings.ToLower(name)
	switch lowered {
	case "access":
		return k.IsAccess()
	case "create":
		return k.IsCreate()
	case "modify", "write":
		return k.IsModify() || k.IsAccess()
	case "remove":
		return k.IsRemove()
	}
	primary := k.Primary()
	return primary != "" && primary == lowered
}

// String returns a readable label for logging.
func (k Kind) String() string {
	if primary := k.Primary(); primary != "" {
		return primary
	}
	switch k {
	case KindAccess:
		return "access"
	case KindModifyOther:
		return "modify"
	case KindCreateOther:
		return "create"
	case KindRemoveOther:
		return "remove"
	}
	return "unclassified"
}
