// Package ui contains the Bubble Tea program that powers the project browser.
// The package is structured so the Model type focuses on message orchestration,
// while dedicated helpers own navigation, input, rendering, and state updates.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, loader results,
//     git status completions, filesystem rescans, README previews).
//   - Key handling first dispatches on the interaction mode: the launch
//     confirmation prompt, the clone URL input, and the help screen each
//     consume keys before the regular menu bindings apply.
//   - Navigation helpers (internal/ui/navigation.go) manage the stack of menu
//     levels, cursor movement, and search freezing. Filter/input helpers
//     (internal/ui/input.go) keep all text entry concerns isolated from the
//     Bubble Tea event loop.
//
// State ownership:
//   - Menu level state lives in internal/ui/state.Level, which tracks items,
//     filtering, selection, and viewport calculations.
//   - Git status results are kept in an internal/state store keyed by project
//     path, so entries survive directory rescans and level refreshes.
//   - Favorites and recents live in internal/history and are written through
//     on every mutation.
//   - Command execution is handled through the internal/ui/command package,
//     letting launch, terminal, and clone actions run asynchronously via the
//     central command bus.
//
// Background interactions:
//   - A gitstatus.Cache computes branch and dirtiness off the UI goroutine;
//     Update waits for completion events and folds them into the status store.
//   - A project.Watcher debounces filesystem changes under the base directory;
//     each event triggers a rescan whose result refreshes every level that
//     derives from the directory tree.
//   - Asynchronous menu loaders run via tea.Cmd values returned by helper
//     functions (e.g., loadMenuCmd). When a loader completes, the typed handler
//     for categoryLoadedMsg pushes the new level onto the stack.
//
// This separation keeps Model.Update compact and makes it easier to test
// independent concerns (navigation, filtering, status sync) without needing to
// reason about the entire TUI at once.
package ui
