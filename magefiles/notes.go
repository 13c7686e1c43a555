package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert turns a directory of exported note JSON into data/markdown.
func Convert(inputDir string) error {
	mg.Deps(Init)
	return sh.RunV("go", "run", cmdPkg, "convert", "--input-dir", inputDir, "--output-dir", "data/markdown")
}

// Group moves dated Markdown files under inputDir into per-year directories.
func Group(inputDir string) error {
	return sh.RunV("go", "run", cmdPkg, "group", "--input-dir", inputDir)
}
