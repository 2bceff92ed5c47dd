package messages

// Template keys. They must match the keys of the configured catalogue.
const (
	Unsupported = "unsupported"

	MainMenuHeader         = "mm_header"
	GreetingButton         = "mm_greeting_button"
	GreetingAnswer         = "mm_greeting_answer"
	WhoIsTheBossButton     = "mm_who_is_the_boss_button"
	WhoIsTheBossAnswer     = "mm_who_is_the_boss_answer"
	WhoIsYourDaddyButton   = "mm_who_is_your_daddy_button"
	WhoIsYourDaddyAnswer   = "mm_who_is_your_daddy_answer"
	ReplyKeyboardHeader    = "rkb_header"
	ReplyKeyboardMenuLabel = "rkb_main_menu_button"
	ReplyKeyboardCatLabel  = "rkb_random_cat_button"

	RandomCatStarted  = "random_cat_started"
	RandomCatFinished = "random_cat_finished"

	DefaultError = "default_error"

	RosterGet          = "dr_get"
	RosterNotFound     = "dr_get_not_found"
	RosterImageRequest = "dr_update_image_request"
	RosterWrongInput   = "dr_update_wrong_input"
	RosterUpdated      = "dr_update_finished"
)

// RequiredKeys lists every key the bot looks up at runtime.
var RequiredKeys = []string{
	Unsupported,
	MainMenuHeader, GreetingButton, GreetingAnswer,
	WhoIsTheBossButton, WhoIsTheBossAnswer,
	WhoIsYourDaddyButton, WhoIsYourDaddyAnswer,
	ReplyKeyboardHeader, ReplyKeyboardMenuLabel, ReplyKeyboardCatLabel,
	RandomCatStarted, RandomCatFinished,
	DefaultError,
	RosterGet, RosterNotFound, RosterImageRequest, RosterWrongInput, RosterUpdated,
}
