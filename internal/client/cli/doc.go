// Package cli is the interactive front end of the LeaveDesk client.
//
// It runs a small REPL whose commands map to the application's views. Every
// view passes a local route admission check first (see the routes package):
// anonymous users are pointed at login, and role-gated views are refused
// with a hint at the caller's own landing view. While a stored session is
// still being restored, navigation is deferred instead of bounced.
//
// Commands
//
//	login, logout, whoami          session lifecycle
//	home, apply, leaves            employee views
//	calendar [YYYY-MM]             approved leave for a month
//	dashboard, approve, reject     administrator leave management
//	users, adduser,
//	activate, deactivate           administrator account management
package cli
