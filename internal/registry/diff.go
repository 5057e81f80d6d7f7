package registry

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
)

// Diff computes a human-readable semantic diff between two manifest
// byte slices, typically a cached snapshot and a freshly fetched
// manifest. Manifests are compared as structured documents, so
// formatting-only changes (key order, indentation, JSON vs YAML)
// produce no diff. Returns the empty string when the manifests are
// semantically identical.
func Diff(previous, current []byte, useColor bool) (string, error) {
	if len(previous) == 0 && len(current) == 0 {
		return "", nil
	}

	previousInput, err := parseManifestInput("cached", previous)
	if err != nil {
		return "", fmt.Errorf("parsing cached manifest: %w", err)
	}

	currentInput, err := parseManifestInput("fetched", current)
	if err != nil {
		return "", fmt.Errorf("parsing fetched manifest: %w", err)
	}

	report, err := dyff.CompareInputFiles(previousInput, currentInput)
	if err != nil {
		return "", fmt.Errorf("comparing manifests: %w", err)
	}

	if len(report.Diffs) == 0 {
		return "", nil
	}

	return renderDiffReport(report, useColor)
}

// parseManifestInput parses manifest bytes into a dyff input file.
func parseManifestInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{
			Location:  name,
			Documents: nil,
		}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	return ytbx.InputFile{
		Location:  name,
		Documents: docs,
	}, nil
}

// renderDiffReport renders a dyff report to a string.
func renderDiffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing diff report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
}
