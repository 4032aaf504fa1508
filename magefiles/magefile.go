// Package main provides build targets for keeper using Mage.
//
// Usage:
//
//	mage build          Compile the keeper binary to bin/
//	mage test:all       Run every test with the race detector
//	mage test:unit      Run tests for one package pattern (default ./...)
//	mage generate       Regenerate gomock mocks
//	mage lint           Run golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install keeper to GOPATH/bin
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "keeper"
	binaryDir  = "bin"
	cmdDir     = "./cmd/keeper"
	versionPkg = "github.com/mesh-intelligence/keeper/pkg/keeper"
)

// Build compiles the keeper binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test groups test targets.
type Test mg.Namespace

// All runs every package's tests with the race detector.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Unit runs the tests matching the KEEPER_TEST_PKGS pattern, ./... when unset.
func (Test) Unit() error {
	pkgs := os.Getenv("KEEPER_TEST_PKGS")
	if pkgs == "" {
		pkgs = "./..."
	}
	return sh.RunV(binGo, "test", "-count=1", pkgs)
}

// Generate regenerates mocks declared with go:generate.
func Generate() error {
	return sh.RunV(binGo, "generate", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	if err := sh.Copy(dst, src); err != nil {
		return err
	}
	fmt.Printf("installed %s (%s)\n", dst, versionPkg)
	return nil
}
