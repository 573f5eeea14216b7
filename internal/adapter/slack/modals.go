package slack

// Callback IDs identify which modal a view_submission came from.
const (
	CallbackCreateTask = "create_task_modal"
	CallbackRemind     = "send_reminder_modal"
)

// Block and action IDs for the create-task modal.
const (
	BlockOwner  = "owner_block"
	ActionOwner = "owner_select"
	BlockText   = "text_block"
	ActionText  = "task_text"
	BlockDue    = "due_block"
	ActionDue   = "due_date"
)

// Block and action IDs for the reminder modal.
const (
	BlockTarget  = "target_block"
	ActionTarget = "target_select"
	BlockTask    = "task_block"
	ActionTask   = "task_select"
	BlockNote    = "note_block"
	ActionNote   = "custom_note"
)

// minQueryZero makes the external select fetch options as soon as the
// menu opens, before the user types anything.
var minQueryZero = 0

// CreateTaskView builds the task-creation modal. channelID is carried
// in private metadata so the submission handler knows where the flow
// started; it may be empty.
func CreateTaskView(channelID string) View {
	return View{
		Type:            "modal",
		CallbackID:      CallbackCreateTask,
		Title:           plainText("Create Task"),
		Submit:          plainText("Create"),
		Close:           plainText("Cancel"),
		PrivateMetadata: channelID,
		Blocks: []Block{
			{
				Type:    "input",
				BlockID: BlockOwner,
				Label:   plainText("Assign to"),
				Element: &Element{
					Type:        "users_select",
					ActionID:    ActionOwner,
					Placeholder: plainText("Select a user"),
				},
				Optional: true,
			},
			{
				Type:    "input",
				BlockID: BlockText,
				Label:   plainText("Task"),
				Element: &Element{
					Type:        "plain_text_input",
					ActionID:    ActionText,
					Placeholder: plainText("What needs to be done?"),
					Multiline:   true,
				},
			},
			{
				Type:    "input",
				BlockID: BlockDue,
				Label:   plainText("Due date (YYYY-MM-DD)"),
				Element: &Element{
					Type:        "plain_text_input",
					ActionID:    ActionDue,
					Placeholder: plainText("2025-12-31"),
				},
			},
		},
	}
}

// ReminderView builds the reminder-dispatch modal. The task select is
// an external select so its options track whichever user is currently
// picked in the same form.
func ReminderView(channelID string) View {
	return View{
		Type:            "modal",
		CallbackID:      CallbackRemind,
		Title:           plainText("Send Reminder"),
		Submit:          plainText("Send"),
		Close:           plainText("Cancel"),
		PrivateMetadata: channelID,
		Blocks: []Block{
			{
				Type:    "input",
				BlockID: BlockTarget,
				Label:   plainText("Remind user"),
				Element: &Element{
					Type:        "users_select",
					ActionID:    ActionTarget,
					Placeholder: plainText("Select a user"),
				},
			},
			{
				Type:    "input",
				BlockID: BlockTask,
				Label:   plainText("About task"),
				Element: &Element{
					Type:           "external_select",
					ActionID:       ActionTask,
					Placeholder:    plainText("Pick one of their open tasks"),
					MinQueryLength: &minQueryZero,
				},
			},
			{
				Type:    "input",
				BlockID: BlockNote,
				Label:   plainText("Note"),
				Element: &Element{
					Type:        "plain_text_input",
					ActionID:    ActionNote,
					Placeholder: plainText("Anything to add?"),
					Multiline:   true,
				},
				Optional: true,
			},
		},
	}
}
