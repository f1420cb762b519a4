//go:build mage

// Package main contains Mage build targets for lunch-menu developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories a scheduled run writes to.
var projectDirs = []string{
	"output",
	"output/history",
}

const (
	binDir  = "bin"
	binName = "lunch-menu"
	cmdPkg  = "./cmd/lunch-menu"
)

// Init creates the output directory structure.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Scrape builds the binary and fetches today's menu into output/, archiving
// it in output/history/menus.db.
func Scrape() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "scrape",
		"--output", filepath.Join("output", "menu.json"),
		"--archive", filepath.Join("output", "history", "menus.db"),
	)
}

// History lists the archived menu dates.
func History() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "history",
		"--archive", filepath.Join("output", "history", "menus.db"),
	)
}
