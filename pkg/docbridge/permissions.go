package docbridge

// Permissions is the resolved permission set handed to the editor.
type Permissions struct {
	Edit     bool `json:"edit"`
	Download bool `json:"download"`
	Print    bool `json:"print"`
	Review   bool `json:"review"`
	Comment  bool `json:"comment"`
	Chat     bool `json:"chat"`
}

// PermissionOverrides holds optional per-field values. A nil field means
// "not specified" and defers to the next layer.
type PermissionOverrides struct {
	Edit     *bool `json:"edit,omitempty"`
	Download *bool `json:"download,omitempty"`
	Print    *bool `json:"print,omitempty"`
	Review   *bool `json:"review,omitempty"`
	Comment  *bool `json:"comment,omitempty"`
	Chat     *bool `json:"chat,omitempty"`
}

// ModeEdit is the editing mode; every other mode is read-only for the
// purposes of the edit-permission fallback.
const ModeEdit = "edit"

// ResolvePermissions applies the three-level override: explicit request
// value, then configured default, then hardcoded fallback. The fallback is
// true for access-style flags and false for the feedback-style flags (review,
// comment); edit falls back to true only when mode is an editing mode.
func ResolvePermissions(request, defaults *PermissionOverrides, mode string) Permissions {
	return Permissions{
		Edit:     resolveBool(request.edit(), defaults.edit(), mode == ModeEdit),
		Download: resolveBool(request.download(), defaults.download(), true),
		Print:    resolveBool(request.print(), defaults.print(), true),
		Review:   resolveBool(request.review(), defaults.review(), false),
		Comment:  resolveBool(request.comment(), defaults.comment(), false),
		Chat:     resolveBool(request.chat(), defaults.chat(), true),
	}
}

// resolveBool picks the first specified value: request wins over default,
// default wins over the hardcoded fallback.
func resolveBool(request, fallbackDefault *bool, fallback bool) bool {
	if request != nil {
		return *request
	}
	if fallbackDefault != nil {
		return *fallbackDefault
	}
	return fallback
}

// nil-safe field accessors so callers may pass a nil overrides struct.

func (o *PermissionOverrides) edit() *bool {
	if o == nil {
		return nil
	}
	return o.Edit
}

func (o *PermissionOverrides) download() *bool {
	if o == nil {
		return nil
	}
	return o.Download
}

func (o *PermissionOverrides) print() *bool {
	if o == nil {
		return nil
	}
	return o.Print
}

func (o *PermissionOverrides) review() *bool {
	if o == nil {
		return nil
	}
	return o.Review
}

func (o *PermissionOverrides) comment() *bool {
	if o == nil {
		return nil
	}
	return o.Comment
}

func (o *PermissionOverrides) chat() *bool {
	if o == nil {
		return nil
	}
	return o.Chat
}
