package bot

// State is the single composition/navigation state an operator is in.
// Every incoming event is dispatched on the operator's current state; an
// input the state does not recognize re-prompts with that state's
// keyboard and leaves the state unchanged.
type State string

const (
	StateMainMenu State = "main_menu"

	StateBroadcastSheet          State = "broadcast_sheet"
	StateBroadcastSelectKind     State = "broadcast_select_kind"
	StateBroadcastText           State = "broadcast_text"
	StateBroadcastTextWithFile   State = "broadcast_text_with_file"
	StateBroadcastUploadFile     State = "broadcast_upload_file"
	StateBroadcastSelectTemplate State = "broadcast_select_template"
	StateBroadcastConfirm        State = "broadcast_confirm"

	StateTemplates                  State = "templates"
	StateTemplatesList              State = "templates_list"
	StateTemplatesActions           State = "templates_actions"
	StateTemplatesDeleteConfirm     State = "templates_delete_confirm"
	StateTemplatesEdit              State = "templates_edit"
	StateTemplatesEditName          State = "templates_edit_name"
	StateTemplatesEditText          State = "templates_edit_text"
	StateTemplatesEditFile          State = "templates_edit_file"
	StateTemplatesDeleteFileConfirm State = "templates_delete_file_confirm"
	StateTemplatesAddFile           State = "templates_add_file"
	StateTemplatesReplaceFile       State = "templates_replace_file"
	StateTemplatesCreateName        State = "templates_create_name"
	StateTemplatesCreateText        State = "templates_create_text"
	StateTemplatesCreateFileQuery   State = "templates_create_file_query"
	StateTemplatesCreateFile        State = "templates_create_file"

	StateSettings                 State = "settings"
	StateSettingsProfile          State = "settings_profile"
	StateSettingsConnectionResult State = "settings_connection_result"
	StateSettingsProfileEdit      State = "settings_profile_edit"
	StateSettingsProfileEditParam State = "settings_profile_edit_param"
	StateSettingsProfileConfirm   State = "settings_profile_confirm"
	StateSettingsInterval         State = "settings_interval"
)
