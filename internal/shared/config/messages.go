package config

// DefaultMessages is the built-in English message catalogue.
// Keys are lower-case because viper folds map keys.
// rkb_header is rendered as MarkdownV2; the name argument is escaped by the caller.
var DefaultMessages = map[string]string{
	"unsupported": "Sorry, I don't understand this. Try /menu.",

	"mm_header":                   "Main menu. Pick something:",
	"mm_greeting_button":          "Say hello",
	"mm_greeting_answer":          "Hello, %s! Nice to see you.",
	"mm_who_is_the_boss_button":   "Who is the boss?",
	"mm_who_is_the_boss_answer":   "You are the boss.",
	"mm_who_is_your_daddy_button": "Who is your daddy?",
	"mm_who_is_your_daddy_answer": "The duty engineer, obviously.",

	"rkb_header":            "Hi, *%s*\\! Use the keyboard below to get around\\.",
	"rkb_main_menu_button":  "📋 Menu",
	"rkb_random_cat_button": "🐈 Random cat",

	"random_cat_started":  "Looking for a cat, hold on...",
	"random_cat_finished": "Here is your cat!",

	"default_error": "Something went wrong. Please try again later.",

	"dr_get":                  "Current duty roster.",
	"dr_get_not_found":        "No duty roster has been uploaded yet.",
	"dr_update_image_request": "Send me the new duty roster as a photo.",
	"dr_update_wrong_input":   "That is not a photo. Send /dr_update to try again.",
	"dr_update_finished":      "Duty roster updated.",
}
