// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"fmt"
	"strings"
)

const maxSubjectLength = 72

// CommitMessage builds an archive commit message: a subject line capped at
// 72 characters followed by the list of stored files.
func CommitMessage(subject string, files []string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "store chart artifacts"
	}
	subject = strings.TrimRight(subject, ".")
	if len(subject) > maxSubjectLength {
		subject = subject[:maxSubjectLength-3] + "..."
	}

	if len(files) == 0 {
		return subject
	}

	var buf strings.Builder
	buf.WriteString(subject)
	buf.WriteString("\n\nStored files:\n")
	for _, f := range files {
		buf.WriteString(fmt.Sprintf("- %s\n", f))
	}
	return buf.String()
}
