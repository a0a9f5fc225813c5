package docbridge

// Document describes the file the editor opens. Key is the per-session
// editing key, not the storage key; URL is where the editor downloads the
// document from.
type Document struct {
	FileType    string      `json:"fileType"`
	Key         string      `json:"key"`
	Title       string      `json:"title"`
	URL         string      `json:"url"`
	Permissions Permissions `json:"permissions"`
}

// EditorUser identifies the user inside the editing session.
type EditorUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Customization carries editor UI behavior flags.
type Customization struct {
	Autosave  bool `json:"autosave"`
	Forcesave bool `json:"forcesave"`
}

// EditorSettings is the editorConfig section of the configuration object.
type EditorSettings struct {
	Mode          string        `json:"mode"`
	Lang          string        `json:"lang"`
	CallbackURL   string        `json:"callbackUrl"`
	User          EditorUser    `json:"user"`
	Customization Customization `json:"customization"`
}

// EditorConfig is the full configuration object handed to the editor.
type EditorConfig struct {
	DocumentType string         `json:"documentType"`
	Document     Document       `json:"document"`
	Editor       EditorSettings `json:"editorConfig"`
}

// BuildRequest is the input to Builder.Build.
type BuildRequest struct {
	FileID      string               `json:"fileId"`
	UserID      string               `json:"userId"`
	UserName    string               `json:"userName"`
	Mode        string               `json:"mode"`
	Lang        string               `json:"lang"`
	Permissions *PermissionOverrides `json:"permissions"`
}

// BuildResult is what a configuration request returns. Token is empty when
// the issuer is disabled.
type BuildResult struct {
	Config            *EditorConfig `json:"config"`
	Token             string        `json:"token,omitempty"`
	DocumentServerURL string        `json:"documentServerUrl"`
}
