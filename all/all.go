// Package all registers every API-backed package manager verifier.
//
// Import for side effects:
//
//	import _ "github.com/prime399/packmate/all"
package all

import (
	_ "github.com/prime399/packmate/internal/chocolatey"
	_ "github.com/prime399/packmate/internal/flatpak"
	_ "github.com/prime399/packmate/internal/homebrew"
	_ "github.com/prime399/packmate/internal/snap"
	_ "github.com/prime399/packmate/internal/winget"
)
