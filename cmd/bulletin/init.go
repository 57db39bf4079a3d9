package main

import (
	"fmt"
	"os"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/style"
)

func runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("file %q already exists", path)
	}

	fmt.Printf("Creating bulletin: %s\n\n", path)
	if err := writeBulletin(path, bulletinFile{Event: document.Default(), Config: style.Default()}); err != nil {
		return err
	}

	fmt.Printf("  Edit %s, then render it:\n\n", path)
	fmt.Printf("    bulletin render -in %s -format png\n\n", path)
	return nil
}
