package form

// SelectedUser scans every block and field and returns the first
// user-picker value carrying a non-empty selection. The scan order is
// unspecified; at most one user picker is expected per form. Returns
// ("", false) when no picker exists or none has a selection yet.
// Missing or malformed substructure reads as not present.
func (s Snapshot) SelectedUser() (string, bool) {
	for _, fields := range s {
		for _, v := range fields {
			if v.Kind == KindUserPicker && v.SelectedUser != "" {
				return v.SelectedUser, true
			}
		}
	}
	return "", false
}

// UserAt returns the selected user id of the user picker at the given
// block and field, or "" if the field is absent, of another kind, or
// has no selection.
func (s Snapshot) UserAt(block, field string) string {
	v, ok := s[block][field]
	if !ok || v.Kind != KindUserPicker {
		return ""
	}
	return v.SelectedUser
}

// TextAt returns the text of the text input at the given block and
// field, or "" if the field is absent or of another kind.
func (s Snapshot) TextAt(block, field string) string {
	v, ok := s[block][field]
	if !ok || v.Kind != KindTextInput {
		return ""
	}
	return v.Text
}

// OptionAt returns the selected option value of the option picker at
// the given block and field, or "" if the field is absent, of another
// kind, or has no selection.
func (s Snapshot) OptionAt(block, field string) string {
	v, ok := s[block][field]
	if !ok || v.Kind != KindOptionPicker {
		return ""
	}
	return v.SelectedOption
}
