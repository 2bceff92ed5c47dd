package bot

import "ESBot/internal/core/ports"

// Slash commands recognised in message text (or photo caption).
const (
	CmdStart        = "/start"
	CmdMenu         = "/menu"
	CmdCat          = "/cat"
	CmdRosterGet    = "/dr_get"
	CmdRosterUpdate = "/dr_update"
)

// Callback payloads bound to the main menu's inline buttons.
// Matched exactly and case-sensitively.
const (
	CallbackGreeting       = "mm_greeting_button"
	CallbackWhoIsTheBoss   = "mm_whoIsTheBoss_button"
	CallbackWhoIsYourDaddy = "mm_whoIsYourDaddy_button"
)

// Photo file names used for uploads.
const (
	catFileName    = "randomCat.jpg"
	rosterFileName = "dutyRoster.jpg"
)

// MenuCommands is the command list registered with the platform at startup.
func MenuCommands() []ports.BotCommand {
	return []ports.BotCommand{
		{Command: CmdStart, Description: "Show the keyboard"},
		{Command: CmdMenu, Description: "Open the main menu"},
		{Command: CmdCat, Description: "Get a random cat"},
		{Command: CmdRosterGet, Description: "Show the duty roster"},
		{Command: CmdRosterUpdate, Description: "Upload a new duty roster"},
	}
}
