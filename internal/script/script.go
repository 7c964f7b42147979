// Package script renders installation scripts for a chosen package
// manager and a set of catalog package names.
package script

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/prime399/packmate/internal/core"
)

// installCommands maps each manager to its install invocation. Catalog
// package names are substituted verbatim, so manager-specific syntax that
// lives in the name (a cask marker, snap flags) lands in the right spot.
var installCommands = map[string]string{
	core.Homebrew:   "brew install %s",
	core.Chocolatey: "choco install -y %s",
	core.Winget:     "winget install --id %s",
	core.Flatpak:    "flatpak install -y flathub %s",
	core.Snap:       "sudo snap install %s",
	core.Apt:        "sudo apt install -y %s",
	core.Dnf:        "sudo dnf install -y %s",
	core.Pacman:     "sudo pacman -S --noconfirm %s",
	core.Zypper:     "sudo zypper install -y %s",
	core.Aur:        "yay -S --noconfirm %s",
	core.Nix:        "nix-env -iA nixpkgs.%s",
}

// shellManagers get a bash shebang; the two Windows managers are emitted
// as plain command lists for cmd/PowerShell.
var shellManagers = map[string]bool{
	core.Homebrew: true, core.Flatpak: true, core.Snap: true,
	core.Apt: true, core.Dnf: true, core.Pacman: true,
	core.Zypper: true, core.Aur: true, core.Nix: true,
}

var scriptTemplate = template.Must(template.New("install").Parse(
	`{{if .Shell}}#!/usr/bin/env bash
set -e

{{end}}# Install {{.Count}} package(s) via {{.Manager}}
{{range .Commands}}{{.}}
{{end}}`))

// Command renders the install command for a single catalog package name.
func Command(managerID, packageName string) (string, error) {
	format, ok := installCommands[managerID]
	if !ok {
		return "", fmt.Errorf("unknown package manager: %s", managerID)
	}
	name := strings.TrimSpace(packageName)
	if name == "" {
		return "", fmt.Errorf("empty package name for %s", managerID)
	}
	return fmt.Sprintf(format, name), nil
}

// Generate renders a full installation script for the manager and package
// names, in input order.
func Generate(managerID string, packageNames []string) (string, error) {
	if len(packageNames) == 0 {
		return "", fmt.Errorf("no packages selected")
	}

	commands := make([]string, 0, len(packageNames))
	for _, name := range packageNames {
		cmd, err := Command(managerID, name)
		if err != nil {
			return "", err
		}
		commands = append(commands, cmd)
	}

	var b strings.Builder
	err := scriptTemplate.Execute(&b, struct {
		Shell    bool
		Manager  string
		Count    int
		Commands []string
	}{
		Shell:    shellManagers[managerID],
		Manager:  managerID,
		Count:    len(commands),
		Commands: commands,
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
