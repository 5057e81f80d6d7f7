package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/raremonarch/bashmod/internal/output"
	"github.com/raremonarch/bashmod/internal/script"
)

// UntrackedModule is a script found in the install directory that the
// store does not know about, with its freshly extracted export set.
type UntrackedModule struct {
	ID      string
	Exports script.ExportSet
}

// ReconcileReport describes how the install directory and the store
// disagree.
type ReconcileReport struct {
	// Untracked lists scripts on disk with no store entry, by id.
	Untracked []UntrackedModule

	// Missing lists store entries whose script file is gone, by id.
	Missing []string
}

// Clean reports whether disk and store agree.
func (r ReconcileReport) Clean() bool {
	return len(r.Untracked) == 0 && len(r.Missing) == 0
}

// Reconcile scans *.sh files in the install directory, re-extracts
// their exports, and reports disagreements between disk and store.
// Unreadable files are skipped, never fatal. The store is not modified;
// acting on the report is the caller's decision.
func (i *Installer) Reconcile() (ReconcileReport, error) {
	var report ReconcileReport

	entries, err := os.ReadDir(i.dir)
	if err != nil {
		if os.IsNotExist(err) {
			// No install directory yet: every store entry is missing.
			for _, m := range i.store.List() {
				report.Missing = append(report.Missing, m.ID)
			}
			return report, nil
		}
		return report, fmt.Errorf("reading install directory: %w", err)
	}

	onDisk := map[string]struct{}{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ScriptExtension) || strings.HasPrefix(name, ".") {
			continue
		}
		id := strings.TrimSuffix(name, ScriptExtension)
		onDisk[id] = struct{}{}

		if _, tracked := i.store.Get(id); tracked {
			continue
		}

		data, err := os.ReadFile(filepath.Join(i.dir, name))
		if err != nil {
			output.Warn("skipping unreadable script", "file", name, "error", err)
			continue
		}
		report.Untracked = append(report.Untracked, UntrackedModule{
			ID:      id,
			Exports: script.Extract(string(data)),
		})
	}

	for _, m := range i.store.List() {
		if _, ok := onDisk[m.ID]; !ok {
			report.Missing = append(report.Missing, m.ID)
		}
	}

	sort.Slice(report.Untracked, func(a, b int) bool {
		return report.Untracked[a].ID < report.Untracked[b].ID
	})
	return report, nil
}
