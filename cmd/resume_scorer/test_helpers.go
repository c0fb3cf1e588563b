package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the resume_scorer binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "resume_scorer"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/resume_scorer ./cmd/resume_scorer'", binaryPath)
	}

	return binaryPath
}

// writeTestFile writes content into a temp dir and returns its path.
func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const testResume = `Jane Doe
jane@example.com

Summary
Backend engineer building Go services on Kubernetes.

Experience
Senior Software Engineer, Acme Corp
- Led migration of 12 services to Kubernetes, cutting deploy time by 40%
- Built REST APIs in Go and Python backed by PostgreSQL
- Mentored 4 engineers and improved team communication

Skills
Go, Python, Docker, Kubernetes, PostgreSQL, AWS, CI/CD

Education
B.S. Computer Science
`

const testJob = `We are hiring a Backend Engineer.
Requirements: Go, Kubernetes, PostgreSQL, Terraform and AWS.
Strong communication and leadership skills.
`
