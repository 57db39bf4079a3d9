package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/session"
	"github.com/eringen/instantbulletin/style"
)

// bulletinFile is the on-disk form of a bulletin. It mirrors the JSON
// state served by the editor.
type bulletinFile struct {
	Event  document.EventData `yaml:"event"`
	Config style.Config       `yaml:"config"`
}

func readBulletin(path string) (bulletinFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return bulletinFile{}, err
	}
	var f bulletinFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return bulletinFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func writeBulletin(path string, f bulletinFile) error {
	b, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// state normalizes the file the same way a new editor session does.
func (f bulletinFile) state() session.State {
	return session.NewWith(f.Event, f.Config).Snapshot()
}
